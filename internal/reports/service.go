package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pavan8023/webibook-backend/internal/auditlog"
	"github.com/Pavan8023/webibook-backend/middleware"
)

var ErrForbidden = errors.New("you do not have access to this report")

// ReportService performs business logic and coordinates repo + exporter.
type ReportService interface {
	GetWebinarsReport(req WebinarReportRequest, access middleware.AccessContext) ([]WebinarReportRow, error)
	ExportWebinarsReport(ctx context.Context, req WebinarReportRequest, access middleware.AccessContext, ip string) ([]byte, string, string, error)

	GetAttendeesReport(req AttendeeReportRequest, access middleware.AccessContext) ([]AttendeeReportRow, error)
	ExportAttendeesReport(ctx context.Context, req AttendeeReportRequest, access middleware.AccessContext, ip string) ([]byte, string, string, error)

	GetAuditLogsReport(req AuditLogReportRequest, access middleware.AccessContext) ([]AuditLogReportRow, error)
	ExportAuditLogsReport(ctx context.Context, req AuditLogReportRequest, access middleware.AccessContext, ip string) ([]byte, string, string, error)
}

type reportService struct {
	repo     ReportRepository
	exporter ReportExporter
	auditSvc auditlog.Service
}

func NewReportService(repo ReportRepository, exporter ReportExporter, auditSvc auditlog.Service) ReportService {
	return &reportService{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
	}
}

// ===============================
// Webinars Report
// ===============================

func (s *reportService) GetWebinarsReport(req WebinarReportRequest, access middleware.AccessContext) ([]WebinarReportRow, error) {
	hostID := req.HostID
	// Hosts only ever see their own webinars; superadmin may scope freely.
	if access.RoleName != middleware.RoleSuperAdmin {
		hostID = &access.UserID
	}
	return s.repo.GetWebinars(hostID, req.Status, req.StartDate, req.EndDate)
}

func (s *reportService) ExportWebinarsReport(ctx context.Context, req WebinarReportRequest, access middleware.AccessContext, ip string) ([]byte, string, string, error) {
	rows, err := s.GetWebinarsReport(req, access)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, contentType, err := s.exporter.Export(ReportTypeWebinars, req.Format, ReportData{Webinars: rows})
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &access.UserID, nil, "REPORT_EXPORTED", map[string]interface{}{
		"report": ReportTypeWebinars,
		"format": req.Format,
		"rows":   len(rows),
	}, ip, "success")

	return data, filename, contentType, nil
}

// ===============================
// Attendees Report
// ===============================

func (s *reportService) GetAttendeesReport(req AttendeeReportRequest, access middleware.AccessContext) ([]AttendeeReportRow, error) {
	if req.EventID == 0 {
		return nil, fmt.Errorf("event_id is required")
	}

	// Hosts may only export the attendee list of their own webinars.
	if access.RoleName != middleware.RoleSuperAdmin {
		hostID, err := s.repo.EventHostID(req.EventID)
		if err != nil {
			return nil, err
		}
		if hostID != access.UserID {
			return nil, ErrForbidden
		}
	}

	return s.repo.GetAttendees(req.EventID)
}

func (s *reportService) ExportAttendeesReport(ctx context.Context, req AttendeeReportRequest, access middleware.AccessContext, ip string) ([]byte, string, string, error) {
	rows, err := s.GetAttendeesReport(req, access)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, contentType, err := s.exporter.Export(ReportTypeAttendees, req.Format, ReportData{Attendees: rows})
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &access.UserID, &req.EventID, "REPORT_EXPORTED", map[string]interface{}{
		"report": ReportTypeAttendees,
		"format": req.Format,
		"rows":   len(rows),
	}, ip, "success")

	return data, filename, contentType, nil
}

// ===============================
// Audit Logs Report
// ===============================

func (s *reportService) GetAuditLogsReport(req AuditLogReportRequest, access middleware.AccessContext) ([]AuditLogReportRow, error) {
	// Audit exports are superadmin-only.
	if access.RoleName != middleware.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	return s.repo.GetAuditLogs(req.UserID, req.Action, req.StartDate, req.EndDate)
}

func (s *reportService) ExportAuditLogsReport(ctx context.Context, req AuditLogReportRequest, access middleware.AccessContext, ip string) ([]byte, string, string, error) {
	rows, err := s.GetAuditLogsReport(req, access)
	if err != nil {
		return nil, "", "", err
	}

	data, filename, contentType, err := s.exporter.Export(ReportTypeAuditLogs, req.Format, ReportData{AuditLogs: rows})
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &access.UserID, nil, "REPORT_EXPORTED", map[string]interface{}{
		"report": ReportTypeAuditLogs,
		"format": req.Format,
		"rows":   len(rows),
	}, ip, "success")

	return data, filename, contentType, nil
}
