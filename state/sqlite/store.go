package sqlite

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"requestpay.com/payment-contract/log"
	"requestpay.com/payment-contract/state"
)

func New(path string) (state.Store, error) {
	contractDb := &liteDb{path: path}
	return contractDb, contractDb.init()
}

type liteDb struct {
	mutex sync.Mutex
	path  string
	db    *sql.DB
}

func (prdb *liteDb) init() error {
	prdb.mutex.Lock()
	defer prdb.mutex.Unlock()

	db, err := sql.Open("sqlite3", prdb.path)
	if err != nil {
		return err
	}
	prdb.db = db
	return prdb.createTableContractState()
}

func (prdb *liteDb) createTableContractState() error {
	_, err := prdb.db.Exec(`
	CREATE TABLE IF NOT EXISTS ContractState (
		Key   	TEXT NOT NULL PRIMARY KEY,
		Value 	TEXT NOT NULL
	)
	`)
	return err
}

func (prdb *liteDb) Get(key string) (string, bool, error) {
	prdb.mutex.Lock()
	defer prdb.mutex.Unlock()

	var value string
	err := prdb.db.QueryRow(`SELECT Value FROM ContractState WHERE Key=?;`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (prdb *liteDb) Apply(writes map[string]string) error {
	prdb.mutex.Lock()
	defer prdb.mutex.Unlock()

	tx, err := prdb.db.Begin()
	if err != nil {
		log.Error(err)
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO ContractState (Key, Value) VALUES (?, ?);`)
	if err != nil {
		log.Error(err)
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for key, value := range writes {
		_, err = stmt.Exec(key, value)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (prdb *liteDb) Close() error {
	prdb.mutex.Lock()
	defer prdb.mutex.Unlock()

	if prdb.db != nil {
		return prdb.db.Close()
	}
	return nil
}
