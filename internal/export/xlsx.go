package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/contact-finder/internal/model"
)

// WriteXLSX writes the organization set and a summary sheet to an xlsx
// workbook at path. Columns mirror the CSV layout.
func WriteXLSX(path string, orgs []model.Organization, stats model.RunStats) error {
	wb := xlsx.NewFile()

	sheet, err := wb.AddSheet("Organizations")
	if err != nil {
		return eris.Wrap(err, "export: add organizations sheet")
	}

	header := sheet.AddRow()
	for _, col := range csvColumns {
		cell := header.AddCell()
		cell.SetString(col)
	}
	for _, o := range orgs {
		row := sheet.AddRow()
		for _, v := range csvRow(o) {
			row.AddCell().SetString(v)
		}
	}

	summary, err := wb.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	addSummaryRow := func(label string, value int) {
		row := summary.AddRow()
		row.AddCell().SetString(label)
		row.AddCell().SetInt(value)
	}
	addSummaryRow("Total", stats.Total)
	addSummaryRow("Tier A", stats.TierA)
	addSummaryRow("Tier B", stats.TierB)
	addSummaryRow("Tier C", stats.TierC)
	addSummaryRow("Phones Found", stats.PhonesFound)
	addSummaryRow("Emails Found", stats.EmailsFound)
	addSummaryRow("Addresses Found", stats.AddressesFound)
	addSummaryRow("Websites Found", stats.WebsitesFound)

	return eris.Wrapf(wb.Save(path), "export: save workbook %s", path)
}
