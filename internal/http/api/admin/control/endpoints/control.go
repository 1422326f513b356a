package endpoints

import (
	"github.com/Nixie-Tech-LLC/onair/internal/db"
	"github.com/Nixie-Tech-LLC/onair/internal/http/api"
	"github.com/Nixie-Tech-LLC/onair/internal/storage"
)

// Refresher recomputes the on-air snapshot after an admin write.
type Refresher interface {
	Refresh()
}

// OffsetSource derives a zone's current UTC offset.
type OffsetSource interface {
	OffsetHours(name string) float64
}

// ControlModules returns every admin module that edits the station.
func ControlModules(store db.Store, storageSystem storage.Storage, offsets OffsetSource, refresher Refresher) []api.Module {
	return []api.Module{
		StationModule(store, offsets, refresher),
		ProgramModule(store, refresher),
		ScheduleModule(store, refresher),
		UploadModule(storageSystem),
	}
}
