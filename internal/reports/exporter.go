package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter defines the interface for exporting reports in different formats
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeWebinars:
		return e.exportWebinarsByFormat(format, timestamp, data.Webinars)
	case ReportTypeAttendees:
		return e.exportAttendeesByFormat(format, timestamp, data.Attendees)
	case ReportTypeAuditLogs:
		return e.exportAuditLogsByFormat(format, timestamp, data.AuditLogs)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// WEBINARS EXPORTS
//// ============================

func (e *reportExporter) exportWebinarsByFormat(format, timestamp string, rows []WebinarReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportWebinarsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("webinars_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportWebinarsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("webinars_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportWebinarsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("webinars_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for webinars: %s", format)
	}
}

func (e *reportExporter) exportWebinarsCSV(rows []WebinarReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Category", "Host", "Date", "Time", "Duration (min)", "Status", "Registrations", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Title,
			r.Category,
			r.HostName,
			r.Date,
			r.Time,
			r.Duration,
			r.Status,
			strconv.FormatInt(r.Registrations, 10),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportWebinarsExcel(rows []WebinarReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Webinars"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Title", "Category", "Host", "Date", "Time", "Duration (min)", "Status", "Registrations", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.HostName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Date)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Time)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Duration)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.Registrations)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportWebinarsPDF(rows []WebinarReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Webinars Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "Title", "Category", "Host", "Date", "Time", "Dur", "Status", "Regs"}
	widths := []float64{15, 75, 35, 40, 25, 22, 15, 25, 18}

	// Print headers
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// Print data rows
	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.HostName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Time, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.Duration, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[8], 6, strconv.FormatInt(r.Registrations, 10), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// ATTENDEES EXPORTS
//// ============================

func (e *reportExporter) exportAttendeesByFormat(format, timestamp string, rows []AttendeeReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportAttendeesExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendees_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportAttendeesCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendees_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportAttendeesPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendees_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for attendees: %s", format)
	}
}

func (e *reportExporter) exportAttendeesCSV(rows []AttendeeReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Registration ID", "Webinar", "Attendee", "Email", "Status", "Join Code", "Registered At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.RegistrationID), 10),
			r.WebinarTitle,
			r.AttendeeName,
			r.AttendeeEmail,
			r.Status,
			r.JoinCode,
			r.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAttendeesExcel(rows []AttendeeReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Attendees"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Registration ID", "Webinar", "Attendee", "Email", "Status", "Join Code", "Registered At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.RegistrationID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.WebinarTitle)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.AttendeeName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.AttendeeEmail)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.JoinCode)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.RegisteredAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAttendeesPDF(rows []AttendeeReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Attendees Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"Reg ID", "Webinar", "Attendee", "Email", "Status", "Join Code", "Registered At"}
	widths := []float64{18, 65, 40, 55, 25, 45, 28}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.RegistrationID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.WebinarTitle, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.AttendeeName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.AttendeeEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.JoinCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.RegisteredAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// AUDIT LOGS EXPORTS
//// ============================

func (e *reportExporter) exportAuditLogsByFormat(format, timestamp string, logs []AuditLogReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatExcel:
		data, err := e.exportAuditLogsExcel(logs)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("audit_logs_report_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportAuditLogsCSV(logs)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("audit_logs_report_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportAuditLogsPDF(logs)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("audit_logs_report_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for audit logs: %s", format)
	}
}

func (e *reportExporter) exportAuditLogsCSV(logs []AuditLogReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "User ID", "Event ID", "Action", "Status", "IP Address", "Timestamp", "Details"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, log := range logs {
		userID := ""
		if log.UserID != nil {
			userID = strconv.FormatUint(uint64(*log.UserID), 10)
		}
		eventID := ""
		if log.EventID != nil {
			eventID = strconv.FormatUint(uint64(*log.EventID), 10)
		}

		record := []string{
			strconv.FormatUint(uint64(log.ID), 10),
			userID,
			eventID,
			log.Action,
			log.Status,
			log.IPAddress,
			log.Timestamp.Format("2006-01-02 15:04:05"),
			log.Details,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAuditLogsExcel(logs []AuditLogReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Audit Logs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "User ID", "Event ID", "Action", "Status", "IP Address", "Timestamp", "Details"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, log := range logs {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), log.ID)
		if log.UserID != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), *log.UserID)
		}
		if log.EventID != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), *log.EventID)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), log.Action)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), log.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), log.IPAddress)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), log.Timestamp.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), log.Details)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *reportExporter) exportAuditLogsPDF(logs []AuditLogReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Audit Logs Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	headers := []string{"ID", "User", "Event", "Action", "Status", "IP Address", "Timestamp"}
	widths := []float64{18, 18, 18, 70, 25, 40, 35}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, log := range logs {
		userID := ""
		if log.UserID != nil {
			userID = fmt.Sprint(*log.UserID)
		}
		eventID := ""
		if log.EventID != nil {
			eventID = fmt.Sprint(*log.EventID)
		}

		pdf.CellFormat(widths[0], 6, fmt.Sprint(log.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, userID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, eventID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, log.Action, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, log.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, log.IPAddress, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, log.Timestamp.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
