package tpc

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type PadMaskEntry struct {
	ROC int `db:"ROC"`
	Row int `db:"PadRow"`
	Pad int `db:"Pad"`
}

// LoadPadMaskFromDB fetches the masked channels valid for a run from the
// run-conditions database.
func LoadPadMaskFromDB(db *sqlx.DB, runNumber int) (*PadMask, error) {
	query := "SELECT ROC, PadRow, Pad FROM PadMask WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Pad mask read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}

	mask := NewPadMask()
	for rows.Next() {
		result := PadMaskEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		mask.Add(result.ROC, result.Row, result.Pad)
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Masking %d pads for run %d", mask.Size(), runNumber)
		logger.Info(message, "database")
	}
	return mask, nil
}
