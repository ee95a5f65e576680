package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/httpresp"
	"github.com/servicollantas/workshop-api/internal/models"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ServiceRevenue struct {
	ServiceID uint    `json:"service_id"`
	Name      string  `json:"name"`
	Count     int64   `json:"count"`
	Revenue   float64 `json:"revenue"`
}

type SummaryReport struct {
	From string `json:"from"`
	To   string `json:"to"`

	TotalRevenue     float64 `json:"total_revenue"`
	InvoiceCount     int64   `json:"invoice_count"`
	AppointmentCount int64   `json:"appointment_count"`
	NewClients       int64   `json:"new_clients"`
	AverageRating    float64 `json:"average_rating"`
	RatingCount      int64   `json:"rating_count"`

	AppointmentsByStatus []StatusCount    `json:"appointments_by_status"`
	AppointmentsPerDay   []DayCount       `json:"appointments_per_day"`
	TopServices          []ServiceRevenue `json:"top_services"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Summary arma el tablero del rango [from, to]. Sin parámetros cubre los
// últimos 30 días.
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	report := SummaryReport{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}

	// Las facturas llevan timestamp completo; el límite superior es
	// exclusivo al día siguiente.
	toExclusive := to.AddDate(0, 0, 1)

	var revenue struct {
		Total float64
		Count int64
	}
	if err := h.db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND date >= ? AND date < ?", models.InvoiceStatusPaid, from, toExclusive).
		Scan(&revenue).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Error al generar el reporte.")
		return
	}
	report.TotalRevenue = revenue.Total
	report.InvoiceCount = revenue.Count

	fromDay := from.Format("2006-01-02")
	toDay := to.Format("2006-01-02")

	if err := h.db.Model(&models.Appointment{}).
		Where("date BETWEEN ? AND ?", fromDay, toDay).
		Count(&report.AppointmentCount).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Error al generar el reporte.")
		return
	}

	if err := h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Where("date BETWEEN ? AND ?", fromDay, toDay).
		Group("status").
		Scan(&report.AppointmentsByStatus).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Error al generar el reporte.")
		return
	}

	if err := h.db.Model(&models.Appointment{}).
		Select("date, COUNT(*) AS count").
		Where("date BETWEEN ? AND ?", fromDay, toDay).
		Group("date").
		Order("date ASC").
		Scan(&report.AppointmentsPerDay).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Error al generar el reporte.")
		return
	}

	if err := h.db.Model(&models.Appointment{}).
		Select("services.id AS service_id, services.name, COUNT(*) AS count, COALESCE(SUM(services.price), 0) AS revenue").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.date BETWEEN ? AND ? AND appointments.status = ?", fromDay, toDay, "completed").
		Group("services.id, services.name").
		Order("revenue DESC").
		Limit(5).
		Scan(&report.TopServices).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Error al generar el reporte.")
		return
	}

	h.db.Model(&models.Client{}).
		Where("created_at >= ? AND created_at < ?", from, toExclusive).
		Count(&report.NewClients)

	var ratingAgg struct {
		Avg   float64
		Count int64
	}
	h.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", from, toExclusive).
		Scan(&ratingAgg)
	report.AverageRating = ratingAgg.Avg
	report.RatingCount = ratingAgg.Count

	httpresp.OK(c, report)
}

func parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_range", "Fecha 'from' inválida.")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}

	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_range", "Fecha 'to' inválida.")
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}

	if to.Before(from) {
		httperr.BadRequest(c, "invalid_date_range", "El rango de fechas está invertido.")
		return time.Time{}, time.Time{}, false
	}

	return from, to, true
}
