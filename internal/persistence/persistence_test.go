package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tbeam-mesh/pacool/internal/controller"
)

const key = "tbeam-1w-sx1262"

func createPersistence(t *testing.T) Persistence {
	p := NewPersistence(filepath.Join(t.TempDir(), "db", "pacool.db"))
	err := p.Init()
	assert.NoError(t, err)
	return p
}

func TestPersistence_Init_CreatesDirectory(t *testing.T) {
	// GIVEN
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	p := NewPersistence(filepath.Join(dir, "pacool.db"))

	// WHEN
	err := p.Init()

	// THEN
	assert.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestPersistence_LoadFanUsage_Missing(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	_, err := p.LoadFanUsage(key)

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_AddFanUsage(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	_, err := p.AddFanUsage(key, FanUsage{OnTimeMillis: 1000, Activations: 2})
	assert.NoError(t, err)

	// WHEN
	total, err := p.AddFanUsage(key, FanUsage{OnTimeMillis: 500, Starts: 1})

	// THEN
	assert.NoError(t, err)
	assert.EqualValues(t, 1500, total.OnTimeMillis)
	assert.EqualValues(t, 2, total.Activations)
	assert.EqualValues(t, 1, total.Starts)
	assert.False(t, total.UpdatedAt.IsZero())

	loaded, err := p.LoadFanUsage(key)
	assert.NoError(t, err)
	assert.EqualValues(t, 1500, loaded.OnTimeMillis)
}

func TestPersistence_DeleteFanUsage(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	_, _ = p.AddFanUsage(key, FanUsage{Activations: 1})

	// WHEN
	err := p.DeleteFanUsage(key)

	// THEN
	assert.NoError(t, err)
	_, err = p.LoadFanUsage(key)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// deleting again is fine
	assert.NoError(t, p.DeleteFanUsage(key))
}

func TestLedger_FlushAddsOnlyGrowth(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	ledger := NewLedger(p, key)

	// WHEN
	err := ledger.Flush(controller.Statistics{OnTimeMillis: 3000, Activations: 1, TransitionsOn: 1})
	assert.NoError(t, err)
	err = ledger.Flush(controller.Statistics{OnTimeMillis: 5000, Activations: 1, TransitionsOn: 1, SensorFaults: 2})
	assert.NoError(t, err)

	// THEN
	total, err := p.LoadFanUsage(key)
	assert.NoError(t, err)
	assert.EqualValues(t, 5000, total.OnTimeMillis)
	assert.EqualValues(t, 1, total.Activations)
	assert.EqualValues(t, 1, total.Starts)
	assert.EqualValues(t, 2, total.SensorFaults)
}

func TestLedger_FlushAccumulatesAcrossRestarts(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	err := NewLedger(p, key).Flush(controller.Statistics{OnTimeMillis: 1000})
	assert.NoError(t, err)

	// WHEN
	err = NewLedger(p, key).Flush(controller.Statistics{OnTimeMillis: 2000})

	// THEN
	assert.NoError(t, err)
	total, err := p.LoadFanUsage(key)
	assert.NoError(t, err)
	assert.EqualValues(t, 3000, total.OnTimeMillis)
}

func TestLedger_FlushWithoutChangesDoesNotWrite(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	ledger := NewLedger(p, key)

	// WHEN
	err := ledger.Flush(controller.Statistics{Polls: 10, GpioWrites: 0})

	// THEN
	assert.NoError(t, err)
	_, err = p.LoadFanUsage(key)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
