package booking

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/company"
	"github.com/RentalDrive/RentalDrive/internal/user"
	"github.com/jung-kurt/gofpdf"
)

// UserDirectory 报表需要的用户查询子集。
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// CompanySource 页眉的公司资料来源；未配置时页眉留白。
type CompanySource interface {
	First(ctx context.Context) (*company.Company, error)
}

// PDFService 组装租约合同与预订报表的 PDF。
type PDFService struct {
	bookings  Store
	vehicles  VehicleStore
	users     UserDirectory
	companies CompanySource
}

func NewPDFService(bookings Store, vehicles VehicleStore, users UserDirectory, companies CompanySource) *PDFService {
	return &PDFService{bookings: bookings, vehicles: vehicles, users: users, companies: companies}
}

func (p *PDFService) companyProfile(ctx context.Context) *company.Company {
	if p.companies == nil {
		return nil
	}
	co, err := p.companies.First(ctx)
	if err != nil {
		return nil
	}
	return co
}

// RentalContract 生成单笔租约的合同 PDF。
func (p *PDFService) RentalContract(ctx context.Context, w io.Writer, id string) error {
	if p == nil || p.bookings == nil {
		return fmt.Errorf("service not initialized")
	}
	b, err := p.bookings.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if b.Status != StatusCompleted {
		return apperr.New(apperr.KindValidation, "Only completed bookings have a rental contract")
	}

	userName := b.UserID
	if p.users != nil {
		if u, err := p.users.FindByID(ctx, b.UserID); err == nil {
			userName = u.Name
		}
	}
	vehicleDesc := b.VehicleID
	if p.vehicles != nil {
		if v, err := p.vehicles.FindByID(ctx, b.VehicleID); err == nil {
			vehicleDesc = fmt.Sprintf("%s %s (%d)", v.Brand, v.Model, v.Year)
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	writeHeader(pdf, p.companyProfile(ctx), "Rental Contract")

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Booking ID", b.ID},
		{"Customer", userName},
		{"Vehicle", vehicleDesc},
		{"Start Date", b.StartDate.Format("2006-01-02")},
		{"End Date", b.EndDate.Format("2006-01-02")},
		{"Duration (days)", fmt.Sprintf("%d", RentalDays(b.StartDate, b.EndDate))},
		{"Status", string(b.Status)},
		{"Total Cost", fmt.Sprintf("%.2f", b.Price)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(130, 8, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Generated on "+time.Now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")

	return pdf.Output(w)
}

// Report 生成全部预订的汇总报表 PDF。
func (p *PDFService) Report(ctx context.Context, w io.Writer) error {
	if p == nil || p.bookings == nil {
		return fmt.Errorf("service not initialized")
	}
	bookings, _, err := p.bookings.List(ctx, ListFilter{Limit: 1000})
	if err != nil {
		return err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	writeHeader(pdf, p.companyProfile(ctx), "Bookings Report")

	headers := []string{"Booking ID", "User Name", "Vehicle Model", "Start Date", "End Date", "Status", "Total Cost"}
	widths := []float64{62, 40, 40, 28, 28, 25, 30}

	pdf.SetFont("Arial", "B", 10)
	for i, hdr := range headers {
		pdf.CellFormat(widths[i], 8, hdr, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	// 按行解析名称；报表量级下 N+1 查询可接受
	pdf.SetFont("Arial", "", 9)
	for _, b := range bookings {
		userName := b.UserID
		if p.users != nil {
			if u, err := p.users.FindByID(ctx, b.UserID); err == nil {
				userName = u.Name
			}
		}
		model := b.VehicleID
		if p.vehicles != nil {
			if v, err := p.vehicles.FindByID(ctx, b.VehicleID); err == nil {
				model = v.Model
			}
		}

		cells := []string{
			b.ID,
			userName,
			model,
			b.StartDate.Format("2006-01-02"),
			b.EndDate.Format("2006-01-02"),
			string(b.Status),
			fmt.Sprintf("%.2f", b.Price),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func writeHeader(pdf *gofpdf.Fpdf, co *company.Company, title string) {
	if co != nil {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, co.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		line := co.Address
		if co.Phone != "" {
			line += "  Tel: " + co.Phone
		}
		if co.Email != "" {
			line += "  " + co.Email
		}
		pdf.CellFormat(0, 5, strings.TrimSpace(line), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}
