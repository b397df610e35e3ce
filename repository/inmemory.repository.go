package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/go-arrower/catalog/domain"
)

// Option configures a MemoryRepository.
type Option func(config *repoConfig)

type repoConfig struct {
	store    Store
	filename string
	// clone is a func(E) E, set by WithClone.
	clone any
}

// WithClone sets a function returning a deep copy of an entity.
// The repository then keeps its own copies: entities passed in and handed out
// can be changed by the caller without affecting the stored ones.
// Without it, the repository stores and returns the given entities as they are.
func WithClone[E any](clone func(E) E) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.clone = clone
	}
}

// WithStore sets a Store used to persist the repository.
//
// There are no transactions or any consistency guarantees at all!
// If the store fails, the change is reverted in memory and the error is returned.
func WithStore(store Store) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.store = store
	}
}

// WithStoreFilename overwrites the file name a Store uses to persist this repository.
func WithStoreFilename(name string) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.filename = name
	}
}

// NewMemoryRepository returns an implementation of Repository for the given entity E.
// If a Store is given, the entities stored previously are loaded.
// It panics, if the stored data exists but can not be loaded.
//
// If your repository needs additional methods, you can embed this repo into your own implementation.
func NewMemoryRepository[E domain.Entity[ID], ID domain.Identity](opts ...Option) *MemoryRepository[E, ID] {
	repo := &MemoryRepository[E, ID]{
		Mutex: &sync.Mutex{},
		Items: []E{},
		repoConfig: repoConfig{
			store:    noopStore{},
			filename: domain.EntityName(*new(E)) + ".json",
		},
	}

	for _, opt := range opts {
		opt(&repo.repoConfig)
	}

	err := repo.store.Load(repo.filename, &repo.Items)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		panic("could not load data for memory repository from store: " + err.Error())
	}

	if repo.Items == nil {
		repo.Items = []E{}
	}

	repo.copy = func(e E) E { return e }
	if clone, ok := repo.clone.(func(E) E); ok {
		repo.copy = clone
	}

	return repo
}

// MemoryRepository implements Repository by keeping all entities in a slice, in insertion order.
type MemoryRepository[E domain.Entity[ID], ID domain.Identity] struct {
	// Mutex is embedded, so that repositories who extend MemoryRepository can lock the same mutex as other methods.
	*sync.Mutex

	// Items is the repository's collection. It is exposed in case you're extending the repository.
	// If you write to Items, USE the Mutex to lock first.
	Items []E

	repoConfig
	copy func(E) E
}

var _ Repository[domain.Entity[domain.UUID], domain.UUID] = (*MemoryRepository[domain.Entity[domain.UUID], domain.UUID])(nil)

// Insert appends entity. Identities are not checked for uniqueness.
func (repo *MemoryRepository[E, ID]) Insert(ctx context.Context, entity E) error {
	return repo.BulkInsert(ctx, []E{entity})
}

func (repo *MemoryRepository[E, ID]) BulkInsert(_ context.Context, entities []E) error {
	repo.Lock()
	defer repo.Unlock()

	n := len(repo.Items)
	for _, entity := range entities {
		repo.Items = append(repo.Items, repo.copy(entity))
	}

	if err := repo.persist(); err != nil {
		repo.Items = repo.Items[:n]
		return err
	}

	return nil
}

// Update replaces the entity with the same identity, keeping its position.
func (repo *MemoryRepository[E, ID]) Update(_ context.Context, entity E) error {
	repo.Lock()
	defer repo.Unlock()

	i := repo.indexOf(entity.EntityID())
	if i < 0 {
		return domain.NewNotFoundError(entity.EntityID(), entity)
	}

	old := repo.Items[i]
	repo.Items[i] = repo.copy(entity)

	if err := repo.persist(); err != nil {
		repo.Items[i] = old
		return err
	}

	return nil
}

// Delete removes the entity with id, the following entities move up one position.
func (repo *MemoryRepository[E, ID]) Delete(_ context.Context, id ID) error {
	repo.Lock()
	defer repo.Unlock()

	i := repo.indexOf(id)
	if i < 0 {
		return domain.NewNotFoundError(id, *new(E))
	}

	old := repo.Items
	repo.Items = slices.Delete(slices.Clone(repo.Items), i, i+1)

	if err := repo.persist(); err != nil {
		repo.Items = old
		return err
	}

	return nil
}

func (repo *MemoryRepository[E, ID]) FindByID(_ context.Context, id ID) (E, error) { //nolint:ireturn,lll // valid use of generics
	repo.Lock()
	defer repo.Unlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.copy(repo.Items[i]), nil
	}

	return *new(E), nil
}

// FindAll returns a new slice of all entities, so the caller can reorder it freely.
func (repo *MemoryRepository[E, ID]) FindAll(_ context.Context) ([]E, error) {
	repo.Lock()
	defer repo.Unlock()

	all := make([]E, 0, len(repo.Items))
	for _, entity := range repo.Items {
		all = append(all, repo.copy(entity))
	}

	return all, nil
}

// indexOf expects the caller to hold the lock.
func (repo *MemoryRepository[E, ID]) indexOf(id ID) int {
	return slices.IndexFunc(repo.Items, func(e E) bool {
		return e.EntityID() == id
	})
}

func (repo *MemoryRepository[E, ID]) persist() error {
	if err := repo.store.Store(repo.filename, repo.Items); err != nil {
		return fmt.Errorf("could not save: %w", err)
	}

	return nil
}
