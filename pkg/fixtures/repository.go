package fixtures

import (
	"context"
	"errors"

	"github.com/raywall/template-service/dyndb"
	"github.com/raywall/template-service/pkg/apperror"
)

// NewStore cria o store tipado da tabela de matrículas.
func NewStore(client dyndb.DynamoDBClient) dyndb.Store[Relationship] {
	return dyndb.New[Relationship](client, dyndb.TableConfig[Relationship]{
		TableName: TableName,
		HashKey:   AttrStudentID,
		SortKey:   AttrCreatedAt,
	})
}

// Repository expõe as consultas suportadas pelos índices da tabela.
type Repository struct {
	store dyndb.Store[Relationship]
}

func NewRepository(store dyndb.Store[Relationship]) *Repository {
	return &Repository{store: store}
}

// Get busca uma matrícula pela chave primária.
func (r *Repository) Get(ctx context.Context, studentID, createdAt string) (*Relationship, error) {
	item, err := r.store.Get(ctx, studentID, createdAt)
	if errors.Is(err, dyndb.ErrNotFound) {
		return nil, apperror.NotFound("Relationship")
	}
	if err != nil {
		return nil, apperror.Internal("Failed to read relationship", err)
	}
	return item, nil
}

// Save valida e grava (upsert).
func (r *Repository) Save(ctx context.Context, item Relationship) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := r.store.Put(ctx, item); err != nil {
		return apperror.Internal("Failed to save relationship", err)
	}
	return nil
}

// ByStudent lista as matrículas de um aluno, mais recentes primeiro.
func (r *Repository) ByStudent(ctx context.Context, studentID string) ([]Relationship, error) {
	items, err := r.store.Query().
		KeyEqual(AttrStudentID, studentID).
		ScanForward(false).
		All(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to query relationships by student", err)
	}
	return items, nil
}

// ByTeacher usa o GSI TeacherIdIndex.
func (r *Repository) ByTeacher(ctx context.Context, teacherID string) ([]Relationship, error) {
	items, err := r.store.Query().
		Index(TeacherIDIndex).
		KeyEqual(AttrTeacherID, teacherID).
		ScanForward(false).
		All(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to query relationships by teacher", err)
	}
	return items, nil
}

// ByStudentSubject usa o LSI SubjectIndex.
func (r *Repository) ByStudentSubject(ctx context.Context, studentID, subject string) ([]Relationship, error) {
	items, err := r.store.Query().
		Index(SubjectIndex).
		KeyEqual(AttrStudentID, studentID).
		KeyEqual(AttrSubject, subject).
		All(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to query relationships by subject", err)
	}
	return items, nil
}
