package fixtures

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/raywall/template-service/dyndb"
)

const (
	NumStudents    = 20
	NumTeachers    = 8
	NumEnrollments = 50
	numSubjects    = 10
)

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Felipe", "Gabriela", "Henrique", "Isabela", "João", "Larissa", "Marcos", "Natália", "Otávio", "Paula", "Rafael", "Sofia", "Tiago"}
	lastNames  = []string{"Almeida", "Barbosa", "Cardoso", "Duarte", "Ferreira", "Gomes", "Lima", "Martins", "Nogueira", "Oliveira", "Pereira", "Rocha", "Santos", "Teixeira"}
	prefixes   = []string{"Prof.", "Dr.", "Dra.", "Me."}
	words      = []string{"Applied", "Modern", "Computer", "Social", "Political", "Environmental", "Data", "Marine", "Visual", "Quantum"}
	areas      = []string{"Science", "Studies", "Arts", "Engineering", "Mathematics"}
)

type person struct {
	id   string
	name string
}

// Seeder gera matrículas aleatórias e grava via store genérico.
type Seeder struct {
	store dyndb.Store[Relationship]
	rnd   *rand.Rand
	now   func() time.Time
}

// NewSeeder cria um seeder. seed 0 usa o relógio como semente.
func NewSeeder(store dyndb.Store[Relationship], seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		store: store,
		rnd:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
	}
}

func (s *Seeder) pick(list []string) string {
	return list[s.rnd.Intn(len(list))]
}

func (s *Seeder) newID() string {
	id, err := uuid.NewRandomFromReader(s.rnd)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Seeder) people(n int, title bool) []person {
	out := make([]person, n)
	for i := range out {
		name := s.pick(firstNames) + " " + s.pick(lastNames)
		if title {
			name = s.pick(prefixes) + " " + name
		}
		out[i] = person{id: s.newID(), name: name}
	}
	return out
}

// Generate cria n matrículas com CreatedAt dentro do último ano.
func (s *Seeder) Generate(n int) []Relationship {
	students := s.people(NumStudents, false)
	teachers := s.people(NumTeachers, true)

	subjects := make([]string, numSubjects)
	for i := range subjects {
		subjects[i] = s.pick(words) + " " + s.pick(areas)
	}

	end := s.now().UTC()
	window := int64(end.Sub(end.AddDate(-1, 0, 0)))

	out := make([]Relationship, n)
	for i := range out {
		student := students[s.rnd.Intn(len(students))]
		teacher := teachers[s.rnd.Intn(len(teachers))]
		createdAt := end.Add(-time.Duration(s.rnd.Int63n(window))).Truncate(time.Second)

		studentName, teacherName := student.name, teacher.name
		out[i] = Relationship{
			StudentID:   student.id,
			CreatedAt:   createdAt.Format(time.RFC3339),
			TeacherID:   teacher.id,
			Subject:     subjects[s.rnd.Intn(len(subjects))],
			StudentName: &studentName,
			TeacherName: &teacherName,
		}
	}
	return out
}

// Seed gera NumEnrollments matrículas, valida e grava em lotes de 25.
func (s *Seeder) Seed(ctx context.Context) ([]Relationship, error) {
	items := s.Generate(NumEnrollments)
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("item %d inválido: %w", i, err)
		}
	}

	log.Info().Int("items", len(items)).Str("table", TableName).Msg("Gravando matrículas")
	if err := s.store.BatchPut(ctx, items); err != nil {
		return nil, fmt.Errorf("erro ao gravar dados de exemplo: %w", err)
	}
	return items, nil
}
