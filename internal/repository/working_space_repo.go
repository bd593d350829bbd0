package repository

import (
	"context"
	"fmt"
	"strings"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpIn  FilterOp = "in"
)

// Filter is one column condition. Column names must be validated by the
// caller against a whitelist.
type Filter struct {
	Column string
	Op     FilterOp
	Values []any
}

type SortField struct {
	Column string
	Desc   bool
}

type SpaceQuery struct {
	Filters []Filter
	Select  []string
	Sort    []SortField
	Limit   int
	Offset  int
}

type WorkingSpaceRepository struct {
	db *gorm.DB
}

func NewWorkingSpaceRepository(db *gorm.DB) *WorkingSpaceRepository {
	return &WorkingSpaceRepository{db: db}
}

func (r *WorkingSpaceRepository) Create(ctx context.Context, ws *domain.WorkingSpace) error {
	if err := database.Conn(ctx, r.db).Create(ws).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *WorkingSpaceRepository) Update(ctx context.Context, ws *domain.WorkingSpace) error {
	res := database.Conn(ctx, r.db).
		Model(&domain.WorkingSpace{ID: ws.ID}).
		Select("name", "address", "telephone", "schedule", "price", "updated_at").
		Updates(ws)
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) {
			return ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the space; its bookings are removed with it.
func (r *WorkingSpaceRepository) Delete(ctx context.Context, id int64) error {
	conn := database.Conn(ctx, r.db)
	if err := conn.Where("working_space_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
		return err
	}
	res := conn.Delete(&domain.WorkingSpace{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WorkingSpaceRepository) GetByID(ctx context.Context, id int64) (*domain.WorkingSpace, error) {
	var ws domain.WorkingSpace
	if err := database.Conn(ctx, r.db).First(&ws, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ws, nil
}

// List applies filters, projection, ordering and paging. total counts the
// filtered rows before paging.
func (r *WorkingSpaceRepository) List(ctx context.Context, q SpaceQuery) ([]domain.WorkingSpace, int64, error) {
	base := database.Conn(ctx, r.db).Model(&domain.WorkingSpace{})
	base, err := applyFilters(base, q.Filters)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	find := base.Session(&gorm.Session{})
	if len(q.Select) > 0 {
		find = find.Select(withID(q.Select))
	}
	if len(q.Sort) == 0 {
		q.Sort = []SortField{{Column: "created_at", Desc: true}}
	}
	for _, s := range q.Sort {
		find = find.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	find = find.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	if q.Limit > 0 {
		find = find.Limit(q.Limit).Offset(q.Offset)
	}

	var spaces []domain.WorkingSpace
	if err := find.Find(&spaces).Error; err != nil {
		return nil, 0, err
	}
	return spaces, total, nil
}

func applyFilters(db *gorm.DB, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		if len(f.Values) == 0 {
			return nil, fmt.Errorf("filter %s has no value", f.Column)
		}
		col := clause.Column{Name: f.Column}
		switch f.Op {
		case OpEq:
			db = db.Where(clause.Eq{Column: col, Value: f.Values[0]})
		case OpGt:
			db = db.Where(clause.Gt{Column: col, Value: f.Values[0]})
		case OpGte:
			db = db.Where(clause.Gte{Column: col, Value: f.Values[0]})
		case OpLt:
			db = db.Where(clause.Lt{Column: col, Value: f.Values[0]})
		case OpLte:
			db = db.Where(clause.Lte{Column: col, Value: f.Values[0]})
		case OpIn:
			db = db.Where(clause.IN{Column: col, Values: f.Values})
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	return db, nil
}

func withID(cols []string) []string {
	for _, c := range cols {
		if strings.EqualFold(c, "id") {
			return cols
		}
	}
	return append([]string{"id"}, cols...)
}
