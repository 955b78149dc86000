package member

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/tchamgoue/memboard/core"
)

var (
	// errors
	ErrNotFound         = errors.New("member not found")
	ErrFormationExists  = errors.New("this formation is already associated with this member")
	ErrConcurrentUpdate = errors.New("member was modified concurrently")

	errFormationRequired = errors.New("formation name is required")
)

// addFormationMaxRetries bounds the read-modify-write loop when concurrent
// writers keep winning the optimistic formations update.
const addFormationMaxRetries = 3

type (
	Repository interface {
		CreateMember(ctx context.Context, mbr Member) (Member, error)
		GetMemberByID(ctx context.Context, id int) (Member, error)
		// UpdateMemberFormations persists the encoded formations value only if
		// the stored value still equals prev; it returns ErrConcurrentUpdate
		// when a concurrent writer got there first.
		UpdateMemberFormations(ctx context.Context, id int, prev, next string) (Member, error)
		// QueryCellDistribution groups members by cell and counts them,
		// ordered by count descending (ties by cell name for a stable order).
		QueryCellDistribution(ctx context.Context) ([]CellDistribution, error)
		// QueryMemberFormations returns the non-empty encoded formations
		// values of all members in a single round-trip.
		QueryMemberFormations(ctx context.Context) ([]string, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists one new member. Formations is stored as-is;
// it is only re-encoded at mutation time.
func (svc *Service) Create(ctx context.Context, nm NewMember) (Member, error) {
	if err := nm.Validate(); err != nil {
		return Member{}, err
	}
	mbr := Member{
		Age:                       nm.Age,
		Sex:                       nm.Sex,
		HighSchoolAverage:         nm.HighSchoolAverage,
		Track:                     nm.Track,
		OtherClubsCount:           nm.OtherClubsCount,
		ProjectsCompleted:         nm.ProjectsCompleted,
		BureauEvaluation:          nm.BureauEvaluation,
		SoftSkillsScore:           nm.SoftSkillsScore,
		InterviewScore:            nm.InterviewScore,
		EngagementIndex:           nm.EngagementIndex,
		HasProfessionalExperience: nm.HasProfessionalExperience,
		Cell:                      nm.Cell,
		Formations:                nm.Formations,
	}
	return svc.repo.CreateMember(ctx, mbr)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Member, error) {
	return svc.repo.GetMemberByID(ctx, id)
}

// CellDistribution returns the members-per-cell aggregate, ordered by count
// descending. An empty cell value forms its own group.
func (svc *Service) CellDistribution(ctx context.Context) ([]CellDistribution, error) {
	return svc.repo.QueryCellDistribution(ctx)
}

// FormationCounts decodes every member's formations and counts enrollments
// per exact formation name.
func (svc *Service) FormationCounts(ctx context.Context) (map[string]int, error) {
	values, err := svc.repo.QueryMemberFormations(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, encoded := range values {
		for _, name := range DecodeFormations(encoded) {
			counts[name]++
		}
	}
	return counts, nil
}

// AddFormation appends one formation name to one member.
// It fails with ErrNotFound for an unknown member, a core.ValidationError
// for an empty name and ErrFormationExists when the member already holds it.
// The persisted update is optimistic: when a concurrent append wins, the
// read-modify-write is retried.
func (svc *Service) AddFormation(ctx context.Context, id int, name string) (Member, error) {
	name = core.CleanString(name)
	if name == "" {
		return Member{}, core.NewValidationError(
			errFormationRequired,
			core.FieldError{Field: "newFormation", Error: errFormationRequired.Error()},
		)
	}

	for attempt := 0; attempt < addFormationMaxRetries; attempt++ {
		mbr, err := svc.repo.GetMemberByID(ctx, id)
		if err != nil {
			return Member{}, err
		}
		if mbr.HasFormation(name) {
			return Member{}, ErrFormationExists
		}

		next := EncodeFormations(append(mbr.FormationList(), name))
		updated, err := svc.repo.UpdateMemberFormations(ctx, mbr.ID, mbr.Formations, next)
		if errors.Is(err, ErrConcurrentUpdate) {
			continue
		}
		if err != nil {
			return Member{}, err
		}
		return updated, nil
	}
	return Member{}, pkgerrors.Wrap(ErrConcurrentUpdate, "adding formation")
}
