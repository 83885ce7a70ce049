package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Adrian140/Stockmind/internal/domain"
)

var (
	isoDatePattern      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	localDatePattern    = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)
	filenameDatePattern = regexp.MustCompile(`(\d{2})_(\d{2})_(\d{4})-(\d{2})_(\d{2})_(\d{4})`)
)

// ParseDate aceita D/M/AAAA, M/D/AAAA e AAAA-MM-DD.
// Se o primeiro componente for maior que 12 ele é o dia; se o segundo for, o formato é M/D.
// Datas ambíguas são lidas como dia primeiro (exportações europeias).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}

	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	m := localDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	first, second, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
	day, month := first, second
	if first <= 12 && second > 12 {
		day, month = second, first
	}

	return makeDate(year, month, day)
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, false
	}

	return t, true
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// DateRange é um intervalo fechado de datas civis
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days lista todas as datas do intervalo, inclusive
func (r DateRange) Days() []time.Time {
	if r.End.Before(r.Start) {
		return nil
	}

	days := make([]time.Time, 0, int(r.End.Sub(r.Start).Hours()/24)+1)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// RangeFromFilename extrai o intervalo no padrão DD_MM_AAAA-DD_MM_AAAA
func RangeFromFilename(name string) (DateRange, bool) {
	m := filenameDatePattern.FindStringSubmatch(name)
	if m == nil {
		return DateRange{}, false
	}

	start, ok := makeDate(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	if !ok {
		return DateRange{}, false
	}
	end, ok := makeDate(atoi(m[6]), atoi(m[5]), atoi(m[4]))
	if !ok {
		return DateRange{}, false
	}

	return DateRange{Start: start, End: end}, true
}

// resolveRange prioriza as datas explícitas e depois o nome do arquivo
func resolveRange(opts Options) (DateRange, error) {
	var rng DateRange

	switch {
	case opts.Start != nil && opts.End != nil:
		rng = DateRange{Start: domain.DateOnly(*opts.Start), End: domain.DateOnly(*opts.End)}
	default:
		fromName, ok := RangeFromFilename(opts.Filename)
		if !ok {
			return DateRange{}, domain.ErrMissingDateRange
		}
		rng = fromName
		if opts.Start != nil {
			rng.Start = domain.DateOnly(*opts.Start)
		}
		if opts.End != nil {
			rng.End = domain.DateOnly(*opts.End)
		}
	}

	if rng.End.Before(rng.Start) {
		return DateRange{}, fmt.Errorf("%w: %s após %s", domain.ErrInvalidRange,
			rng.Start.Format(time.DateOnly), rng.End.Format(time.DateOnly))
	}

	return rng, nil
}
