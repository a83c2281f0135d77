package locations

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"github.com/SeanMWG/inventory-app/internal/repository"
	"github.com/SeanMWG/inventory-app/pkg/apperrors"
)

type backfillRow struct {
	SiteName   string  `db:"site_name"`
	RoomNumber string  `db:"room_number"`
	RoomName   *string `db:"room_name"`
}

// BackfillLocations creates location rows for every distinct
// (site, room) pair still embedded in unlinked inventory rows, then
// points those rows at the directory. Room types are derived from the
// room name. Used during migration from the denormalized data set.
func BackfillLocations(ctx context.Context, repo *repository.Repository, log *zap.Logger) (created, linked int, err error) {
	err = repository.WithTransaction(ctx, repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var rows []backfillRow
		query := tx.Select("site_name", "room_number", "room_name").
			Distinct().
			From("inventory").
			Where(
				goqu.I("location_id").IsNull(),
				goqu.I("site_name").IsNotNull(),
				goqu.I("room_number").IsNotNull(),
			)

		if err := query.Executor().ScanStructs(&rows); err != nil {
			return apperrors.WrapDBError("unable to scan unlinked inventory", err)
		}

		for _, row := range rows {
			locationID, madeNew, err := findOrCreateLocation(tx, row)
			if err != nil {
				return err
			}
			if madeNew {
				created++
			}

			result, err := tx.Update("inventory").
				Set(goqu.Record{"location_id": locationID}).
				Where(goqu.Ex{
					"location_id": nil,
					"site_name":   row.SiteName,
					"room_number": row.RoomNumber,
				}).
				Executor().Exec()
			if err != nil {
				return apperrors.WrapDBError("failed to link inventory to location", err)
			}

			affected, _ := result.RowsAffected()
			linked += int(affected)
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	log.Info("location backfill finished",
		zap.Int("locations_created", created),
		zap.Int("items_linked", linked),
	)

	return created, linked, nil
}

func findOrCreateLocation(tx *goqu.TxDatabase, row backfillRow) (int, bool, error) {
	var locationID int

	found, err := tx.Select("location_id").
		From("locations").
		Where(goqu.Ex{"site_name": row.SiteName, "room_number": row.RoomNumber}).
		Executor().ScanVal(&locationID)
	if err != nil {
		return 0, false, apperrors.WrapDBError("unable to look up location", err)
	}
	if found {
		return locationID, false, nil
	}

	roomName := "Unknown"
	if row.RoomName != nil {
		roomName = *row.RoomName
	}

	query := tx.Insert("locations").
		Rows(goqu.Record{
			"site_name":   row.SiteName,
			"room_number": row.RoomNumber,
			"room_name":   roomName,
			"room_type":   CategorizeRoom(roomName),
		}).
		Returning("location_id")

	if _, err := query.Executor().ScanVal(&locationID); err != nil {
		return 0, false, apperrors.WrapDBError("failed to insert location record", err)
	}

	return locationID, true, nil
}
