package member

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tchamgoue/memboard/core"
)

// Source column labels, as exported by the legacy roster spreadsheet.
// ID_Membre is accepted but ignored: ids are assigned by the store.
const (
	colMemberID      = "ID_Membre"
	colAge           = "Age"
	colSex           = "Sexe"
	colHighSchoolAvg = "Moyenne_Lycée"
	colTrack         = "Filiére"
	colOtherClubs    = "Autres_Clubs"
	colProjects      = "Projets_Realisés"
	colBureauEval    = "Evaluation_Bureau"
	colSoftSkills    = "Soft_Skills"
	colInterview     = "Score_Entretien"
	colProExperience = "Experience_Professionnelle"
	colEngagement    = "Indice_Engagement"
	colCell          = "Cellule"
	colFormations    = "Formations"
)

var requiredColumns = []string{
	colAge, colSex, colHighSchoolAvg, colTrack, colOtherClubs, colProjects,
	colBureauEval, colSoftSkills, colInterview, colProExperience,
	colEngagement, colCell, colFormations,
}

type (
	// RowError records one rejected source row.
	RowError struct {
		Line int
		Err  error
	}

	// Report summarizes one import run.
	Report struct {
		RunID     string
		Processed int
		Created   int
		Skipped   int
		RowErrors []RowError
	}

	// Importer bulk-loads members from a row-oriented CSV source.
	// Rows are processed strictly sequentially in source order; the run is
	// one-shot and not resumable mid-stream.
	Importer struct {
		svc        *Service
		logger     core.Logger
		onRowError string
	}
)

func (re RowError) Error() string {
	return fmt.Sprintf("row %d: %v", re.Line, re.Err)
}

func NewImporter(svc *Service, logger core.Logger, onRowError string) (*Importer, error) {
	switch onRowError {
	case core.RowErrorSkip, core.RowErrorAbort:
	default:
		return nil, errors.Errorf("unknown row error policy %q", onRowError)
	}
	return &Importer{svc: svc, logger: logger, onRowError: onRowError}, nil
}

// ImportCSV reads the source lazily (header + comma-delimited rows, quoted
// fields, UTF-8) and creates one member per accepted row. No deduplication
// is performed against existing members.
//
// A row failing type coercion or validation follows the configured policy:
// with "skip" it is logged and counted, with "abort" the run stops on it.
// The policy covers row content only; a structurally malformed row (bad
// quoting, wrong field count) is a source error and always stops the run.
func (imp *Importer) ImportCSV(ctx context.Context, r io.Reader) (Report, error) {
	report := Report{RunID: uuid.New().String()}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return report, errors.Wrap(err, "reading header")
	}
	cols, err := mapColumns(header)
	if err != nil {
		return report, err
	}

	imp.logger.Info(fmt.Sprintf("import %s: starting (on row error: %s)", report.RunID, imp.onRowError))

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "import interrupted")
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, errors.Wrapf(err, "reading row %d", line)
		}
		report.Processed++

		nm, err := coerceRow(cols, row)
		if err == nil {
			_, err = imp.svc.Create(ctx, nm)
		}
		if err != nil {
			rowErr := RowError{Line: line, Err: err}
			if imp.onRowError == core.RowErrorAbort {
				return report, errors.Wrap(rowErr, "import aborted")
			}
			report.Skipped++
			report.RowErrors = append(report.RowErrors, rowErr)
			imp.logger.Warn(fmt.Sprintf("import %s: skipping %v", report.RunID, rowErr))
			continue
		}
		report.Created++
	}

	imp.logger.Info(fmt.Sprintf(
		"import %s: done; processed=%d created=%d skipped=%d",
		report.RunID, report.Processed, report.Created, report.Skipped))
	return report, nil
}

// mapColumns resolves the header labels to field indexes.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, label := range header {
		if i == 0 {
			label = strings.TrimPrefix(label, "\ufeff") // strip UTF-8 BOM
		}
		cols[strings.TrimSpace(label)] = i
	}
	for _, label := range requiredColumns {
		if _, ok := cols[label]; !ok {
			return nil, errors.Errorf("missing column %q in header", label)
		}
	}
	return cols, nil
}

// coerceRow converts one source row to a typed NewMember and validates it.
// Experience_Professionnelle is true iff it case-insensitively matches the
// literal "true"; any other value coerces to false.
func coerceRow(cols map[string]int, row []string) (NewMember, error) {
	var nm NewMember
	var err error

	get := func(label string) string {
		idx := cols[label]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	if nm.Age, err = strconv.Atoi(strings.TrimSpace(get(colAge))); err != nil {
		return nm, errors.Wrapf(err, "column %s", colAge)
	}
	if nm.HighSchoolAverage, err = parseFloatColumn(get(colHighSchoolAvg), colHighSchoolAvg); err != nil {
		return nm, err
	}
	if nm.OtherClubsCount, err = strconv.Atoi(strings.TrimSpace(get(colOtherClubs))); err != nil {
		return nm, errors.Wrapf(err, "column %s", colOtherClubs)
	}
	if nm.ProjectsCompleted, err = strconv.Atoi(strings.TrimSpace(get(colProjects))); err != nil {
		return nm, errors.Wrapf(err, "column %s", colProjects)
	}
	if nm.BureauEvaluation, err = strconv.Atoi(strings.TrimSpace(get(colBureauEval))); err != nil {
		return nm, errors.Wrapf(err, "column %s", colBureauEval)
	}
	if nm.SoftSkillsScore, err = parseFloatColumn(get(colSoftSkills), colSoftSkills); err != nil {
		return nm, err
	}
	if nm.InterviewScore, err = parseFloatColumn(get(colInterview), colInterview); err != nil {
		return nm, err
	}
	if nm.EngagementIndex, err = parseFloatColumn(get(colEngagement), colEngagement); err != nil {
		return nm, err
	}

	nm.Sex = get(colSex)
	nm.Track = get(colTrack)
	nm.Cell = get(colCell)
	nm.Formations = get(colFormations) // stored as-is; re-encoded only at mutation time
	nm.HasProfessionalExperience = strings.EqualFold(strings.TrimSpace(get(colProExperience)), "true")

	if err = nm.Validate(); err != nil {
		return nm, err
	}
	return nm, nil
}

func parseFloatColumn(val, label string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "column %s", label)
	}
	return f, nil
}
