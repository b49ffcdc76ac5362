package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWebinars() []WebinarReportRow {
	return []WebinarReportRow{
		{
			ID: 1, Title: "Go Concurrency Patterns", Category: "engineering",
			HostName: "Priya", Date: "2026-08-28", Time: "14:30:00", Duration: "60",
			Status: "upcoming", Registrations: 42,
			CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestExport_Webinars(t *testing.T) {
	e := NewReportExporter()

	t.Run("csv", func(t *testing.T) {
		data, fname, mime, err := e.Export(ReportTypeWebinars, FormatCSV, ReportData{Webinars: sampleWebinars()})
		require.NoError(t, err)
		assert.Equal(t, "text/csv", mime)
		assert.True(t, strings.HasSuffix(fname, ".csv"))

		body := string(data)
		assert.Contains(t, body, "Go Concurrency Patterns")
		assert.Contains(t, body, "2026-08-28")
		assert.Contains(t, body, "42")
	})

	t.Run("excel", func(t *testing.T) {
		data, fname, mime, err := e.Export(ReportTypeWebinars, FormatExcel, ReportData{Webinars: sampleWebinars()})
		require.NoError(t, err)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", mime)
		assert.True(t, strings.HasSuffix(fname, ".xlsx"))
		assert.NotEmpty(t, data)
	})

	t.Run("pdf", func(t *testing.T) {
		data, fname, mime, err := e.Export(ReportTypeWebinars, FormatPDF, ReportData{Webinars: sampleWebinars()})
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", mime)
		assert.True(t, strings.HasSuffix(fname, ".pdf"))
		assert.True(t, strings.HasPrefix(string(data), "%PDF"))
	})
}

func TestExport_AuditLogsHandleNilIDs(t *testing.T) {
	e := NewReportExporter()
	logs := []AuditLogReportRow{
		{ID: 7, Action: "EVENT_STATUS_SWEEP", Status: "success", Timestamp: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)},
	}

	data, _, _, err := e.Export(ReportTypeAuditLogs, FormatCSV, ReportData{AuditLogs: logs})
	require.NoError(t, err)
	assert.Contains(t, string(data), "EVENT_STATUS_SWEEP")
}

func TestExport_RejectsUnknownTypeAndFormat(t *testing.T) {
	e := NewReportExporter()

	_, _, _, err := e.Export("payments", FormatCSV, ReportData{})
	assert.Error(t, err)

	_, _, _, err = e.Export(ReportTypeWebinars, "xml", ReportData{})
	assert.Error(t, err)
}
