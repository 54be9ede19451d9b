package migrations

import (
	"context"

	"MediTrack/services"

	"github.com/rs/zerolog/log"
)

/*
* Count occupied beds per ward
* Overwrite every ward counter that disagrees
 */
func ReconcileWardOccupancy(ctx context.Context, wards services.WardStore, beds services.BedStore) (int, error) {
	occupied, err := beds.OccupiedByWard(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error from OccupiedByWard")
		return 0, err
	}
	all, err := wards.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing wards")
		return 0, err
	}
	fixed := 0
	for _, w := range all {
		n := occupied[w.ID]
		if w.CurrentOccupancy == n {
			continue
		}
		if err := wards.SetOccupancy(ctx, w.ID, n); err != nil {
			log.Error().Err(err).Str("ward", w.Name).Msg("Error from SetOccupancy")
			return fixed, err
		}
		log.Warn().Str("ward", w.Name).Int("was", w.CurrentOccupancy).Int("now", n).Msg("ward occupancy reconciled")
		fixed++
	}
	return fixed, nil
}
