package dummydb

import (
	"sync"

	"github.com/tchamgoue/memboard/core/member"
)

type (
	DB struct {
		member *memberTable
	}

	memberTable struct {
		sync.RWMutex
		table   map[int]*member.Member
		pkCount int
	}
)

func Open() (*DB, error) {
	db := &DB{
		member: &memberTable{table: make(map[int]*member.Member)},
	}
	return db, nil
}
