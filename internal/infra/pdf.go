package infra

// pdf.go: optional PDF copy of a basket receipt using go-pdf/fpdf.
// Same content as the text receipt, laid out on an A6 page:
//   - Title and basket type
//   - Assembly timestamp
//   - Item table (name, quantity, unit price, lot code)
//   - Bold total
//
// The output file sits next to the text receipt with a .pdf extension.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"estoquecestas/internal/model"

	"github.com/go-pdf/fpdf"
)

// NomeArquivoPDF maps a text receipt name to its PDF sibling.
func NomeArquivoPDF(nomeArquivo string) string {
	return strings.TrimSuffix(nomeArquivo, filepath.Ext(nomeArquivo)) + ".pdf"
}

// GerarReciboPDF renders cesta (with Itens loaded) into storagePath.
// Returns the path to the generated file.
func GerarReciboPDF(cesta *model.Cesta, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, NomeArquivoPDF(cesta.NomeArquivo))

	// A6 = 105mm × 148mm
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 105, Ht: 148},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.AddPage()
	// Core fonts are cp1252; translate the UTF-8 product names.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 10

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr("Cesta "+cesta.Tipo), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, cesta.DataMontagem.Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.Line(5, pdf.GetY(), pageW-5, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.40 // name
	col2 := contentW * 0.10 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.30 // lot code

	pdf.SetFont("Helvetica", "B", 6)
	pdf.CellFormat(col1, 4, "Nome", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 4, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 4, tr("Preço Unit."), "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 4, tr("Código"), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	for _, item := range cesta.Itens {
		nome := item.Nome
		if r := []rune(nome); len(r) > 24 {
			nome = string(r[:23]) + "."
		}
		pdf.CellFormat(col1, 4, tr(nome), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("%d", item.Quantidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, "R$ "+item.PrecoUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 4, tr(item.CodigoProduto), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(5, pdf.GetY(), pageW-5, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "Valor Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 6, "R$ "+cesta.PrecoTotal.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
