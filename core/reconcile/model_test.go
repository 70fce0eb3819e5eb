package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// memModel is an in-memory host used by the engine tests.
type memModel struct {
	levels  []Level
	grids   []Grid
	types   []ColumnType
	columns map[ElementID]Instance
	nextID  ElementID

	// Default parameter table for created columns. nil means all writable.
	params map[Param]bool

	beginErr   error
	commitErr  error
	levelsErr  error
	nilCreate  bool
	createErr  func(pt Point, typ ColumnType) error
	markErr    func(mark string) error
	moveErr    func(id ElementID) error
	activateFn func(id ElementID) error
	deleteErr  func(id ElementID) error

	beginCalls  int
	committed   bool
	rolledBack  bool
	activated   []ElementID
	regenerated int
}

func newMemModel() *memModel {
	return &memModel{
		columns: make(map[ElementID]Instance),
		nextID:  1000,
	}
}

// addColumn places a committed column and returns its ID.
func (m *memModel) addColumn(inst Instance) ElementID {
	m.nextID++
	inst.ID = m.nextID
	if inst.Params == nil {
		inst.Params = allWritable()
	}
	m.columns[inst.ID] = inst
	return inst.ID
}

// byMark returns the committed columns carrying mark.
func (m *memModel) byMark(mark string) []Instance {
	var out []Instance
	for _, c := range m.columns {
		if c.Mark == mark {
			out = append(out, c)
		}
	}
	return out
}

func allWritable() map[Param]bool {
	return map[Param]bool{ParamMark: false, ParamBaseLevel: false, ParamTopLevel: false}
}

func copyParams(p map[Param]bool) map[Param]bool {
	out := make(map[Param]bool, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (m *memModel) Levels(ctx context.Context) ([]Level, error) {
	if m.levelsErr != nil {
		return nil, m.levelsErr
	}
	return append([]Level(nil), m.levels...), nil
}

func (m *memModel) Grids(ctx context.Context) ([]Grid, error) {
	return append([]Grid(nil), m.grids...), nil
}

func (m *memModel) ColumnTypes(ctx context.Context) ([]ColumnType, error) {
	return append([]ColumnType(nil), m.types...), nil
}

func (m *memModel) Columns(ctx context.Context) ([]Instance, error) {
	ids := make([]ElementID, 0, len(m.columns))
	for id := range m.columns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Instance, 0, len(ids))
	for _, id := range ids {
		c := m.columns[id]
		if c.Location != nil {
			loc := *c.Location
			c.Location = &loc
		}
		c.Params = copyParams(c.Params)
		out = append(out, c)
	}
	return out, nil
}

func (m *memModel) Begin(ctx context.Context, name string) (Transaction, error) {
	m.beginCalls++
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	work := make(map[ElementID]Instance, len(m.columns))
	for k, v := range m.columns {
		work[k] = v
	}
	return &memTx{m: m, work: work}, nil
}

type memTx struct {
	m    *memModel
	work map[ElementID]Instance
}

func (t *memTx) ActivateType(ctx context.Context, id ElementID) error {
	if t.m.activateFn != nil {
		if err := t.m.activateFn(id); err != nil {
			return err
		}
	}
	t.m.activated = append(t.m.activated, id)
	return nil
}

func (t *memTx) Regenerate(ctx context.Context) error {
	t.m.regenerated++
	return nil
}

func (t *memTx) CreateColumn(ctx context.Context, pt Point, typ ColumnType, base Level) (*Instance, error) {
	if t.m.createErr != nil {
		if err := t.m.createErr(pt, typ); err != nil {
			return nil, err
		}
	}
	if t.m.nilCreate {
		return nil, nil
	}
	t.m.nextID++
	params := t.m.params
	if params == nil {
		params = allWritable()
	}
	loc := pt
	inst := Instance{
		ID:          t.m.nextID,
		Location:    &loc,
		TypeID:      typ.ID,
		BaseLevelID: base.ID,
		Params:      copyParams(params),
	}
	t.work[inst.ID] = inst
	out := inst
	return &out, nil
}

func (t *memTx) get(id ElementID) (Instance, error) {
	inst, ok := t.work[id]
	if !ok {
		return Instance{}, fmt.Errorf("element %d not found", id)
	}
	return inst, nil
}

func (t *memTx) SetMark(ctx context.Context, id ElementID, mark string) error {
	if t.m.markErr != nil {
		if err := t.m.markErr(mark); err != nil {
			return err
		}
	}
	inst, err := t.get(id)
	if err != nil {
		return err
	}
	inst.Mark = mark
	t.work[id] = inst
	return nil
}

func (t *memTx) SetLevel(ctx context.Context, id ElementID, p Param, level ElementID) error {
	inst, err := t.get(id)
	if err != nil {
		return err
	}
	switch p {
	case ParamBaseLevel:
		inst.BaseLevelID = level
	case ParamTopLevel:
		inst.TopLevelID = level
	default:
		return fmt.Errorf("unknown level parameter %q", p)
	}
	t.work[id] = inst
	return nil
}

func (t *memTx) MoveColumn(ctx context.Context, id ElementID, pt Point) error {
	if t.m.moveErr != nil {
		if err := t.m.moveErr(id); err != nil {
			return err
		}
	}
	inst, err := t.get(id)
	if err != nil {
		return err
	}
	loc := pt
	inst.Location = &loc
	t.work[id] = inst
	return nil
}

func (t *memTx) ChangeType(ctx context.Context, id ElementID, typ ElementID) error {
	inst, err := t.get(id)
	if err != nil {
		return err
	}
	inst.TypeID = typ
	t.work[id] = inst
	return nil
}

func (t *memTx) DeleteColumn(ctx context.Context, id ElementID) error {
	if t.m.deleteErr != nil {
		if err := t.m.deleteErr(id); err != nil {
			return err
		}
	}
	if _, err := t.get(id); err != nil {
		return err
	}
	delete(t.work, id)
	return nil
}

func (t *memTx) Atomic(ctx context.Context, fn func(m Mutator) error) error {
	saved := make(map[ElementID]Instance, len(t.work))
	for k, v := range t.work {
		saved[k] = v
	}
	if err := fn(t); err != nil {
		t.work = saved
		return err
	}
	return nil
}

func (t *memTx) Commit() error {
	if t.m.commitErr != nil {
		return t.m.commitErr
	}
	t.m.columns = t.work
	t.m.committed = true
	return nil
}

func (t *memTx) Rollback() error {
	t.m.rolledBack = true
	return nil
}

// newFixtureModel returns a model with a 3x3 orthogonal grid (A-C, 1-3 at
// 10 unit spacing), two levels and two column types.
func newFixtureModel() *memModel {
	m := newMemModel()
	m.levels = []Level{
		{ID: 1, Name: "L0", Elevation: 0},
		{ID: 2, Name: "L1", Elevation: 3.5},
	}
	for i, name := range []string{"A", "B", "C"} {
		x := float64(i * 10)
		m.grids = append(m.grids, Grid{
			ID:    ElementID(10 + i),
			Name:  name,
			Curve: &Line{Start: Point{X: x, Y: -5}, End: Point{X: x, Y: 50}},
		})
	}
	for i, name := range []string{"1", "2", "3"} {
		y := float64(i * 10)
		m.grids = append(m.grids, Grid{
			ID:    ElementID(20 + i),
			Name:  name,
			Curve: &Line{Start: Point{X: -5, Y: y}, End: Point{X: 50, Y: y}},
		})
	}
	m.types = []ColumnType{
		{ID: 100, Family: "RC sq", Name: "500mm", Active: true},
		{ID: 101, Family: "RC sq", Name: "600mm", Active: true},
	}
	return m
}
