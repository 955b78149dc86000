package sqlxrepos

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tchamgoue/memboard/core/member"
)

var rowColumns = []string{
	"id", "age", "sexe", "moyenne_lycee", "filiere", "autres_clubs", "projets", "eval_bureau",
	"soft_skills", "score_entretien", "indice_engagement", "experience_pro", "cellule", "formations",
}

func setup(t *testing.T) (*memberRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewMemberRepository(db), mock
}

func memberRowValues(id int, cell, formations string) []driver.Value {
	return []driver.Value{id, 23, "Femme", 14.5, "Informatique", 2, 3, 4, 7.5, 8.2, 0.86, true, cell, formations}
}

func TestMemberRepository_GetMemberByID(t *testing.T) {
	repo, mock := setup(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(memberRowValues(1, "Douala", "Leadership, Finance")...))

	mbr, err := repo.GetMemberByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetMemberByID() failed: %v", err)
	}
	if mbr.ID != 1 || mbr.Cell != "Douala" || mbr.Formations != "Leadership, Finance" {
		t.Errorf("GetMemberByID() = %+v", mbr)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	if _, err = repo.GetMemberByID(ctx, 404); !errors.Is(err, member.ErrNotFound) {
		t.Errorf("GetMemberByID() error = %v, want ErrNotFound", err)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMemberRepository_GetMemberByID_nullColumns(t *testing.T) {
	repo, mock := setup(t)

	values := memberRowValues(7, "", "")
	values[12], values[13] = nil, nil // cellule and formations are nullable
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(values...))

	mbr, err := repo.GetMemberByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetMemberByID() failed: %v", err)
	}
	if mbr.Cell != "" || mbr.Formations != "" {
		t.Errorf("NULL columns must decode to empty strings, got %+v", mbr)
	}
}

func TestMemberRepository_UpdateMemberFormations(t *testing.T) {
	repo, mock := setup(t)
	ctx := context.Background()

	t.Run("applies while unchanged", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "member" SET formations`)).
			WithArgs("A, B, C", 1, "A, B").
			WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(memberRowValues(1, "Douala", "A, B, C")...))

		mbr, err := repo.UpdateMemberFormations(ctx, 1, "A, B", "A, B, C")
		if err != nil {
			t.Fatalf("UpdateMemberFormations() failed: %v", err)
		}
		if mbr.Formations != "A, B, C" {
			t.Errorf("formations = %q, want %q", mbr.Formations, "A, B, C")
		}
	})

	t.Run("concurrent writer won", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "member" SET formations`)).
			WithArgs("A, B, C", 1, "A, B").
			WillReturnRows(sqlmock.NewRows(rowColumns))
		// the member still exists, so the optimistic predicate lost the race
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(memberRowValues(1, "Douala", "A, B, D")...))

		_, err := repo.UpdateMemberFormations(ctx, 1, "A, B", "A, B, C")
		if !errors.Is(err, member.ErrConcurrentUpdate) {
			t.Errorf("UpdateMemberFormations() error = %v, want ErrConcurrentUpdate", err)
		}
	})

	t.Run("member gone", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "member" SET formations`)).
			WithArgs("C", 404, "").
			WillReturnRows(sqlmock.NewRows(rowColumns))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
			WithArgs(404).
			WillReturnRows(sqlmock.NewRows(rowColumns))

		_, err := repo.UpdateMemberFormations(ctx, 404, "", "C")
		if !errors.Is(err, member.ErrNotFound) {
			t.Errorf("UpdateMemberFormations() error = %v, want ErrNotFound", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMemberRepository_QueryCellDistribution(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY COALESCE(cellule, '')`)).
		WillReturnRows(sqlmock.NewRows([]string{"cellule", "cnt"}).
			AddRow("X", 2).
			AddRow("Y", 1))

	dist, err := repo.QueryCellDistribution(context.Background())
	if err != nil {
		t.Fatalf("QueryCellDistribution() failed: %v", err)
	}

	want := []member.CellDistribution{
		{Cell: "X", Count: member.CellDistributionCount{Cell: 2}},
		{Cell: "Y", Count: member.CellDistributionCount{Cell: 1}},
	}
	if len(dist) != len(want) {
		t.Fatalf("QueryCellDistribution() = %v, want %v", dist, want)
	}
	for i := range want {
		if dist[i] != want[i] {
			t.Errorf("QueryCellDistribution()[%d] = %v, want %v", i, dist[i], want[i])
		}
	}
}

func TestMemberRepository_QueryMemberFormations(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT formations FROM "member"`)).
		WillReturnRows(sqlmock.NewRows([]string{"formations"}).
			AddRow("Leadership, Finance").
			AddRow("Finance"))

	values, err := repo.QueryMemberFormations(context.Background())
	if err != nil {
		t.Fatalf("QueryMemberFormations() failed: %v", err)
	}
	if len(values) != 2 || values[0] != "Leadership, Finance" || values[1] != "Finance" {
		t.Errorf("QueryMemberFormations() = %v", values)
	}
}

func TestMemberRepository_CreateMember(t *testing.T) {
	repo, mock := setup(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "member"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	mbr, err := repo.CreateMember(context.Background(), member.Member{
		Age: 23, Sex: "Homme", Cell: "Douala", Formations: "Finance",
	})
	if err != nil {
		t.Fatalf("CreateMember() failed: %v", err)
	}
	if mbr.ID != 42 {
		t.Errorf("CreateMember() id = %d, want 42", mbr.ID)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
