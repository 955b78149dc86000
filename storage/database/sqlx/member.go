package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tchamgoue/memboard/core/member"
)

const memberColumns = `id, age, sexe, moyenne_lycee, filiere, autres_clubs, projets, eval_bureau,
soft_skills, score_entretien, indice_engagement, experience_pro, cellule, formations`

type memberRepository struct {
	db *sqlx.DB
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *sql.DB) *memberRepository {
	return &memberRepository{db: sqlx.NewDb(db, "postgres")}
}

// memberRow is the table-shaped view of member.Member; cellule and
// formations are nullable legacy columns.
type memberRow struct {
	ID            int         `db:"id"`
	Age           int         `db:"age"`
	Sex           string      `db:"sexe"`
	HighSchoolAvg float64     `db:"moyenne_lycee"`
	Track         string      `db:"filiere"`
	OtherClubs    int         `db:"autres_clubs"`
	Projects      int         `db:"projets"`
	BureauEval    int         `db:"eval_bureau"`
	SoftSkills    float64     `db:"soft_skills"`
	Interview     float64     `db:"score_entretien"`
	Engagement    float64     `db:"indice_engagement"`
	ProExperience bool        `db:"experience_pro"`
	Cell          null.String `db:"cellule"`
	Formations    null.String `db:"formations"`
}

func (repo memberRepository) row(mbr member.Member) memberRow {
	return memberRow{
		ID:            mbr.ID,
		Age:           mbr.Age,
		Sex:           mbr.Sex,
		HighSchoolAvg: mbr.HighSchoolAverage,
		Track:         mbr.Track,
		OtherClubs:    mbr.OtherClubsCount,
		Projects:      mbr.ProjectsCompleted,
		BureauEval:    mbr.BureauEvaluation,
		SoftSkills:    mbr.SoftSkillsScore,
		Interview:     mbr.InterviewScore,
		Engagement:    mbr.EngagementIndex,
		ProExperience: mbr.HasProfessionalExperience,
		Cell:          null.NewString(mbr.Cell, mbr.Cell != ""),
		Formations:    null.NewString(mbr.Formations, mbr.Formations != ""),
	}
}

func (repo memberRepository) unrow(row memberRow) member.Member {
	return member.Member{
		ID:                        row.ID,
		Age:                       row.Age,
		Sex:                       row.Sex,
		HighSchoolAverage:         row.HighSchoolAvg,
		Track:                     row.Track,
		OtherClubsCount:           row.OtherClubs,
		ProjectsCompleted:         row.Projects,
		BureauEvaluation:          row.BureauEval,
		SoftSkillsScore:           row.SoftSkills,
		InterviewScore:            row.Interview,
		EngagementIndex:           row.Engagement,
		HasProfessionalExperience: row.ProExperience,
		Cell:                      row.Cell.String,
		Formations:                row.Formations.String,
	}
}

// trapNoRowsErr maps psql "no rows" err to member.ErrNotFound
func (repo memberRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return member.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo memberRepository) CreateMember(ctx context.Context, mbr member.Member) (member.Member, error) {
	row := repo.row(mbr)
	query := `
INSERT INTO "member" (age, sexe, moyenne_lycee, filiere, autres_clubs, projets, eval_bureau,
soft_skills, score_entretien, indice_engagement, experience_pro, cellule, formations)
VALUES (:age, :sexe, :moyenne_lycee, :filiere, :autres_clubs, :projets, :eval_bureau,
:soft_skills, :score_entretien, :indice_engagement, :experience_pro, :cellule, :formations)
RETURNING id`

	rows, err := repo.db.NamedQueryContext(ctx, query, row)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "inserting member")
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return member.Member{}, errors.Wrap(rows.Err(), "inserting member: no id returned")
	}
	if err = rows.Scan(&row.ID); err != nil {
		return member.Member{}, errors.Wrap(err, "inserting member")
	}
	return repo.unrow(row), nil
}

func (repo memberRepository) GetMemberByID(ctx context.Context, id int) (member.Member, error) {
	var row memberRow
	query := `SELECT ` + memberColumns + ` FROM "member" WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return member.Member{}, repo.trapNoRowsErr(err, "finding member by ID")
	}
	return repo.unrow(row), nil
}

// UpdateMemberFormations is an optimistic single-field update: it only
// applies while the stored value still matches prev (NULL and '' compare
// equal), so a concurrently appended formation is never overwritten.
func (repo memberRepository) UpdateMemberFormations(ctx context.Context, id int, prev, next string) (member.Member, error) {
	var row memberRow
	query := `
UPDATE "member" SET formations = $1
WHERE id = $2 AND COALESCE(formations, '') = $3
RETURNING ` + memberColumns

	err := repo.db.GetContext(ctx, &row, query, null.NewString(next, next != ""), id, prev)
	if errors.Cause(err) == sql.ErrNoRows {
		// either the member is gone or a concurrent writer changed formations
		if _, getErr := repo.GetMemberByID(ctx, id); getErr != nil {
			return member.Member{}, getErr
		}
		return member.Member{}, member.ErrConcurrentUpdate
	}
	if err != nil {
		return member.Member{}, errors.Wrap(err, "updating member formations")
	}
	return repo.unrow(row), nil
}

func (repo memberRepository) QueryCellDistribution(ctx context.Context) ([]member.CellDistribution, error) {
	var rows []struct {
		Cell  string `db:"cellule"`
		Count int    `db:"cnt"`
	}
	query := `
SELECT COALESCE(cellule, '') AS cellule, COUNT(*) AS cnt
FROM "member"
GROUP BY COALESCE(cellule, '')
ORDER BY cnt DESC, cellule ASC`

	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying cell distribution")
	}

	dist := make([]member.CellDistribution, 0, len(rows))
	for _, row := range rows {
		dist = append(dist, member.CellDistribution{
			Cell:  row.Cell,
			Count: member.CellDistributionCount{Cell: row.Count},
		})
	}
	return dist, nil
}

func (repo memberRepository) QueryMemberFormations(ctx context.Context) ([]string, error) {
	var values []string
	query := `SELECT formations FROM "member" WHERE formations IS NOT NULL AND btrim(formations) <> ''`
	if err := repo.db.SelectContext(ctx, &values, query); err != nil {
		return nil, errors.Wrap(err, "querying member formations")
	}
	return values, nil
}
