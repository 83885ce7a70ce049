package csvtable

import (
	"strings"
	"unicode"
)

const byteOrderMark = "\uFEFF"

// Record é uma linha do arquivo indexada pelo nome do cabeçalho
type Record map[string]string

// Table é o resultado do parse de um arquivo tabular
type Table struct {
	Headers   []string
	Records   []Record
	Delimiter rune
}

// Parse converte um texto delimitado em registros indexados pelo cabeçalho.
// O delimitador (vírgula ou ponto e vírgula) é detectado na primeira linha.
func Parse(text string) *Table {
	// Só o início é aparado: o fim pode estar dentro de um campo entre aspas aberto
	text = strings.TrimLeftFunc(strings.TrimPrefix(text, byteOrderMark), unicode.IsSpace)
	if strings.TrimSpace(text) == "" {
		return &Table{Delimiter: ','}
	}

	delimiter := DetectDelimiter(text)
	return buildTable(splitRows(text, delimiter), delimiter)
}

// DetectDelimiter conta vírgulas e pontos e vírgulas fora de aspas na primeira linha.
// O ponto e vírgula só vence quando é estritamente mais frequente.
func DetectDelimiter(text string) rune {
	text = strings.TrimSpace(strings.TrimPrefix(text, byteOrderMark))

	commas, semicolons := 0, 0
	inQuotes := false

scan:
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		switch c {
		case '\n', '\r':
			break scan
		case ',':
			commas++
		case ';':
			semicolons++
		}
	}

	if semicolons > commas {
		return ';'
	}
	return ','
}

// splitRows quebra o texto em linhas e campos respeitando aspas
func splitRows(text string, delimiter rune) [][]string {
	var (
		rows      [][]string
		row       []string
		field     strings.Builder
		inQuotes  bool
		wasQuoted bool
	)

	flushField := func() {
		value := field.String()
		if !wasQuoted {
			value = strings.TrimSpace(value)
		}
		row = append(row, value)
		field.Reset()
		wasQuoted = false
	}

	flushRow := func() {
		flushField()
		if !isBlankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	delim := byte(delimiter)
	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			// Aspas só abrem um campo quando aparecem no início dele
			if strings.TrimSpace(field.String()) == "" {
				field.Reset()
				inQuotes = true
				wasQuoted = true
			} else {
				field.WriteByte(c)
			}
		case delim:
			flushField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			flushRow()
		case '\n':
			flushRow()
		default:
			field.WriteByte(c)
		}
	}

	// Registro final parcial (sem quebra de linha ou com aspas abertas)
	if field.Len() > 0 || len(row) > 0 || wasQuoted {
		flushRow()
	}

	return rows
}

func buildTable(rows [][]string, delimiter rune) *Table {
	table := &Table{Delimiter: delimiter}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return table
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	headers[0] = strings.TrimSpace(strings.TrimPrefix(headers[0], byteOrderMark))
	table.Headers = headers

	table.Records = make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		record := make(Record, len(headers))
		for i, header := range headers {
			if _, exists := record[header]; exists {
				continue
			}
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record[header] = value
		}
		table.Records = append(table.Records, record)
	}

	return table
}

func isBlankRow(row []string) bool {
	for _, field := range row {
		if field != "" {
			return false
		}
	}
	return true
}
