package csvtable

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook lê a primeira aba de um arquivo XLSX no mesmo formato de Table
func ReadWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{Delimiter: ','}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler linhas da aba %s: %w", sheets[0], err)
	}

	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}

	// Planilhas exportadas costumam ter linhas vazias antes do cabeçalho
	for len(rows) > 0 && isBlankRow(rows[0]) {
		rows = rows[1:]
	}

	return buildTable(rows, ','), nil
}

// ParseFile escolhe o leitor pela extensão do arquivo
func ParseFile(name string, r io.Reader) (*Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return ReadWorkbook(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo %s: %w", name, err)
	}

	return Parse(string(data)), nil
}
