package interfaces

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	analysis "heatpump-insight/internal/analysis/domain"
)

// BuildReportPDF renders an analysis transparency report as PDF.
func BuildReportPDF(result *analysis.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("report export: nil result")
	}
	report := result.Transparency

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Heat Pump Analysis Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Scenario: %s", result.ScenarioName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Guidance: %s (%s)", result.Guidance.Status, result.Guidance.Tier))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Action: %s", result.Guidance.Action))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "Explanation")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, result.Explanation, "", "L", false)
	pdf.Ln(4)

	for _, section := range reportSections(result) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, section.title)
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		for _, row := range section.rows {
			pdf.CellFormat(60, 6, row.label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(120, 6, row.value, "1", 0, "L", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, "Why this conclusion")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, report.WhyThisConclusion, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportXLSX renders an analysis transparency report as a
// single-sheet workbook.
func BuildReportXLSX(result *analysis.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, errors.New("report export: nil result")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	line := 1
	write := func(label, value string) error {
		cell := fmt.Sprintf("A%d", line)
		if err := f.SetSheetRow(sheet, cell, &[]any{label, value}); err != nil {
			return err
		}
		line++
		return nil
	}

	if err := write("Scenario", result.ScenarioName); err != nil {
		return nil, err
	}
	if err := write("Explanation", result.Explanation); err != nil {
		return nil, err
	}
	if err := write("Guidance Tier", string(result.Guidance.Tier)); err != nil {
		return nil, err
	}
	if err := write("Action", result.Guidance.Action); err != nil {
		return nil, err
	}
	line++

	for _, section := range reportSections(result) {
		if err := write(section.title, ""); err != nil {
			return nil, err
		}
		for _, row := range section.rows {
			if err := write(row.label, row.value); err != nil {
				return nil, err
			}
		}
		line++
	}
	if err := write("Why this conclusion", result.Transparency.WhyThisConclusion); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type reportRow struct {
	label string
	value string
}

type reportSection struct {
	title string
	rows  []reportRow
}

func reportSections(result *analysis.AnalysisResult) []reportSection {
	report := result.Transparency
	return []reportSection{
		{
			title: "Detection",
			rows: []reportRow{
				{"Pattern Detected", report.DetectionDetails.PatternDetected},
				{"Detection Confidence", report.DetectionDetails.DetectionConfidence},
				{"Is Anomaly?", report.DetectionDetails.IsAnomaly},
				{"Trigger", report.DetectionDetails.Trigger},
			},
		},
		{
			title: "Measurements",
			rows: []reportRow{
				{"Indoor Temperature", report.Measurements.IndoorTemperature},
				{"Target Temperature", report.Measurements.TargetTemperature},
				{"Temperature Gap", report.Measurements.TemperatureGap},
				{"Outdoor Temperature", report.Measurements.OutdoorTemperature},
				{"System Efficiency (COP)", report.Measurements.SystemEfficiency},
				{"COP Interpretation", report.Measurements.COPInterpretation},
				{"Power Consumption", report.Measurements.PowerConsumption},
				{"Flow Temperature", report.Measurements.FlowTemperature},
			},
		},
		{
			title: "Context",
			rows: []reportRow{
				{"Timestamp", report.Context.Timestamp},
				{"Electricity Price", report.Context.ElectricityPrice},
				{"Peak Price", report.Context.PeakPrice},
				{"Grid Signal", report.Context.GridSignal},
				{"Weather Forecast", report.Context.WeatherForecast},
			},
		},
		{
			title: "Property Baseline",
			rows: []reportRow{
				{"Property Type", report.PropertyDetails.PropertyType},
				{"Heat Pump", report.PropertyDetails.HeatPump},
				{"Heat Pump Size", report.PropertyDetails.HeatPumpSize},
				{"Typical Annual Efficiency", report.PropertyDetails.TypicalAnnualEfficiency},
			},
		},
		{
			title: "Calculated Benefits",
			rows: []reportRow{
				{"Cost Savings Today", report.CalculatedBenefits.CostSavingsToday},
				{"Carbon Avoided", report.CalculatedBenefits.CarbonAvoided},
				{"Equivalent To", report.CalculatedBenefits.EquivalentTo},
			},
		},
	}
}
