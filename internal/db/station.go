package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/model"
)

// the station is a single row, written on the first save
const stationID = 1

const stationColumns = `id, stream_url, site_title, background_image, logo_image,
	theme_color, visualizer, timezone_offset, timezone, updated_at`

// GetStation returns the station settings, or sanitized defaults when the
// row has not been written yet.
func (s *pgStore) GetStation() (model.Station, error) {
	var st model.Station
	err := s.db.Get(&st, `SELECT `+stationColumns+` FROM station_settings WHERE id = $1;`, stationID)
	if errors.Is(err, sql.ErrNoRows) {
		st = model.Station{ID: stationID}
		st.Sanitize()
		return st, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("GetStation failed")
		return model.Station{}, err
	}
	return st, nil
}

func (s *pgStore) SaveStation(st model.Station) (model.Station, error) {
	var out model.Station
	err := s.db.Get(&out, `
	INSERT INTO station_settings
	  (id, stream_url, site_title, background_image, logo_image, theme_color, visualizer, timezone_offset, timezone, updated_at)
	VALUES
	  ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
	ON CONFLICT (id) DO UPDATE SET
	  stream_url       = EXCLUDED.stream_url,
	  site_title       = EXCLUDED.site_title,
	  background_image = EXCLUDED.background_image,
	  logo_image       = EXCLUDED.logo_image,
	  theme_color      = EXCLUDED.theme_color,
	  visualizer       = EXCLUDED.visualizer,
	  timezone_offset  = EXCLUDED.timezone_offset,
	  timezone         = EXCLUDED.timezone,
	  updated_at       = now()
	RETURNING `+stationColumns+`;`,
		stationID, st.StreamURL, st.SiteTitle, st.BackgroundImage, st.LogoImage,
		st.ThemeColor, st.Visualizer, st.TimezoneOffset, st.Timezone,
	)
	if err != nil {
		log.Error().Err(err).Msg("SaveStation failed")
		return model.Station{}, err
	}
	return out, nil
}
