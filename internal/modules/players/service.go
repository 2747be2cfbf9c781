package players

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/domain"
	"github.com/gridironhq/gridiron/pkg/formulas"
)

// Service turns filtered player rows into ranked, sorted, paginated
// listings. Ranks are recomputed on every request from the current metrics,
// never stored.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new player listing service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "players").Logger(),
	}
}

// DefaultPageSize is used when a request does not specify one.
const DefaultPageSize = 25

// MaxPageSize caps a single listing page.
const MaxPageSize = 200

// List returns one page of ranked player records for the request.
//
// Overall rank is a dense rank by valuation descending over the entire
// filtered set; position rank is the same computation partitioned by
// position. Both are assigned in a single forward scan over the canonical
// order (valuation desc, name asc) the repository returns.
func (s *Service) List(req ListRequest) (*ListResult, error) {
	if req.Page < 1 {
		return nil, domain.NewValidation("page must be >= 1, got %d", req.Page)
	}
	if req.PageSize < 1 || req.PageSize > MaxPageSize {
		return nil, domain.NewValidation("page_size must be between 1 and %d, got %d", MaxPageSize, req.PageSize)
	}

	sortBy := normalizeSortKey(req.SortBy)
	order := normalizeOrder(req.Order)

	rows, err := s.repo.ListFiltered(req.Filter)
	if err != nil {
		return nil, err
	}

	records := rankRecords(rows)
	sortRecords(records, sortBy, order)

	total := len(records)
	totalPages := (total + req.PageSize - 1) / req.PageSize

	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	return &ListResult{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      total,
		TotalPages: totalPages,
		SortBy:     sortBy,
		Order:      order,
		Items:      records[start:end],
	}, nil
}

// Positions returns the distinct positions with player counts.
func (s *Service) Positions() ([]PositionCount, error) {
	return s.repo.Positions()
}

// Teams returns the distinct team codes with player counts.
func (s *Service) Teams() ([]TeamCount, error) {
	return s.repo.Teams()
}

// rankRecords converts rows (already in valuation-desc, name-asc order) into
// records with dense overall and per-position ranks.
func rankRecords(rows []row) []Record {
	records := make([]Record, 0, len(rows))

	valuations := make([]float64, len(rows))
	for i, r := range rows {
		valuations[i] = r.Valuation
	}
	overall := formulas.DenseRanks(valuations)

	positionRank := make(map[string]int)
	positionPrev := make(map[string]float64)

	for i, r := range rows {
		pos := r.Position
		if count, seen := positionRank[pos]; !seen || r.Valuation != positionPrev[pos] {
			positionRank[pos] = count + 1
			positionPrev[pos] = r.Valuation
		}

		records = append(records, Record{
			ID:           r.ID,
			Name:         r.Name,
			Position:     r.Position,
			Team:         r.Team,
			Age:          r.Age,
			Valuation:    r.Valuation,
			OverallRank:  overall[i],
			PositionRank: positionRank[pos],
			Trend30:      r.Adds24h - r.Drops24h,
			Adds24h:      r.Adds24h,
			Drops24h:     r.Drops24h,
		})
	}

	return records
}

// normalizeSortKey maps an arbitrary sort key to a supported one.
func normalizeSortKey(key string) string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case SortByName:
		return SortByName
	case SortByPosition:
		return SortByPosition
	case SortByTeam:
		return SortByTeam
	case SortByAge:
		return SortByAge
	case SortByTrend30:
		return SortByTrend30
	case SortByAdds24h:
		return SortByAdds24h
	case SortByDrops24h:
		return SortByDrops24h
	case SortByOverallRank:
		return SortByOverallRank
	case SortByPositionRank:
		return SortByPositionRank
	default:
		return SortByValuation
	}
}

// normalizeOrder maps an arbitrary direction to asc/desc.
func normalizeOrder(order string) string {
	if strings.ToLower(strings.TrimSpace(order)) == "asc" {
		return "asc"
	}
	return "desc"
}

// sortRecords orders records by the requested key and direction, with name
// ascending as the deterministic secondary key regardless of direction.
func sortRecords(records []Record, sortBy, order string) {
	asc := order == "asc"

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		cmp := compareByKey(a, b, sortBy)
		if cmp == 0 {
			return a.Name < b.Name
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}

func compareByKey(a, b Record, sortBy string) int {
	switch sortBy {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByPosition:
		return strings.Compare(a.Position, b.Position)
	case SortByTeam:
		return strings.Compare(a.Team, b.Team)
	case SortByAge:
		return compareInt(ageOrZero(a.Age), ageOrZero(b.Age))
	case SortByTrend30:
		return compareInt(a.Trend30, b.Trend30)
	case SortByAdds24h:
		return compareInt(a.Adds24h, b.Adds24h)
	case SortByDrops24h:
		return compareInt(a.Drops24h, b.Drops24h)
	case SortByOverallRank:
		return compareInt(a.OverallRank, b.OverallRank)
	case SortByPositionRank:
		return compareInt(a.PositionRank, b.PositionRank)
	default: // valuation
		return compareFloat(a.Valuation, b.Valuation)
	}
}

func ageOrZero(age *int) int {
	if age == nil {
		return 0
	}
	return *age
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
