package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/tchamgoue/memboard/core/member"
)

type memberRepository struct {
	db *memberTable
}

var _ member.Repository = (*memberRepository)(nil) // interface compliance check

func NewMemberRepository(db *DB) member.Repository {
	return &memberRepository{db: db.member}
}

func (repo *memberRepository) query() []member.Member {
	members := make([]member.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		members = append(members, *m)
	}
	return members
}

func (repo *memberRepository) CreateMember(_ context.Context, mbr member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	mbr.ID = repo.db.pkCount
	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) GetMemberByID(_ context.Context, id int) (member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if mbr, ok := repo.db.table[id]; ok {
		return *mbr, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) UpdateMemberFormations(_ context.Context, id int, prev, next string) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	mbr, ok := repo.db.table[id]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	if mbr.Formations != prev {
		return member.Member{}, member.ErrConcurrentUpdate
	}
	mbr.Formations = next
	return *mbr, nil
}

func (repo *memberRepository) QueryCellDistribution(_ context.Context) ([]member.CellDistribution, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	counts := make(map[string]int)
	for _, mbr := range repo.query() {
		counts[mbr.Cell]++
	}

	dist := make([]member.CellDistribution, 0, len(counts))
	for cell, count := range counts {
		dist = append(dist, member.CellDistribution{
			Cell:  cell,
			Count: member.CellDistributionCount{Cell: count},
		})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count.Cell != dist[j].Count.Cell {
			return dist[i].Count.Cell > dist[j].Count.Cell
		}
		return dist[i].Cell < dist[j].Cell
	})
	return dist, nil
}

func (repo *memberRepository) QueryMemberFormations(_ context.Context) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	values := make([]string, 0)
	for _, mbr := range repo.query() {
		if strings.TrimSpace(mbr.Formations) != "" {
			values = append(values, mbr.Formations)
		}
	}
	sort.Strings(values) // stable compute order for a given snapshot
	return values, nil
}
