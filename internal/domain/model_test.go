package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/melodic-software/medley/internal/domain"
)

func TestReport_Summarize(t *testing.T) {
	report := &domain.Report{
		Diagnostics: []domain.Diagnostic{
			{ID: "MDY001", Severity: domain.SeverityWarning},
			{ID: "MDY001", Severity: domain.SeverityWarning},
			{ID: "MDY005", Severity: domain.SeverityInfo},
			{ID: "MDY010", Severity: domain.SeverityError},
		},
	}
	report.Summarize()

	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, 2, report.Summary.Warnings)
	assert.Equal(t, 1, report.Summary.Infos)
	assert.Equal(t, 2, report.Summary.ByRule["MDY001"])
	assert.Equal(t, 1, report.Summary.ByRule["MDY010"])
}

func TestReport_SummarizeEmpty(t *testing.T) {
	report := &domain.Report{}
	report.Summarize()
	assert.Zero(t, report.Summary.Errors)
	assert.Zero(t, report.Summary.Warnings)
	assert.Zero(t, report.Summary.Infos)
}

func TestDiagnostic_Fixable(t *testing.T) {
	fixable := domain.Diagnostic{Fix: &domain.FixMetadata{RequiredSuffix: "Repository"}}
	assert.True(t, fixable.Fixable())

	boundary := domain.Diagnostic{ID: "MDY010"}
	assert.False(t, boundary.Fixable())
}
