// Package fixtures define a tabela de demonstração de matrículas
// (aluno x professor), sua criação, dados de exemplo e consultas.
package fixtures

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raywall/template-service/pkg/apperror"
)

const (
	TableName = "poc-StudentTeacherRelationships"

	AttrStudentID = "StudentId"
	AttrCreatedAt = "CreatedAt"
	AttrTeacherID = "TeacherId"
	AttrSubject   = "Subject"

	SubjectIndex   = "SubjectIndex"
	TeacherIDIndex = "TeacherIdIndex"
)

// Relationship é uma matrícula de um aluno com um professor em uma disciplina.
type Relationship struct {
	StudentID   string  `dynamodbav:"StudentId" json:"StudentId" validate:"required,min=1,max=50"`
	CreatedAt   string  `dynamodbav:"CreatedAt" json:"CreatedAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	TeacherID   string  `dynamodbav:"TeacherId" json:"TeacherId" validate:"required,min=1,max=50"`
	Subject     string  `dynamodbav:"Subject" json:"Subject" validate:"required,min=1,max=100"`
	StudentName *string `dynamodbav:"StudentName,omitempty" json:"StudentName,omitempty" validate:"omitempty,max=200"`
	TeacherName *string `dynamodbav:"TeacherName,omitempty" json:"TeacherName,omitempty" validate:"omitempty,max=200"`
}

var validate = validator.New()

// Validate devolve um erro de validação (400) descrevendo o primeiro campo inválido.
func (r Relationship) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Internal("", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("falhou na regra '%s'", e.Tag()))
	}
	return apperror.Validation(verrs[0].Field(), strings.Join(msgs, "; "))
}
