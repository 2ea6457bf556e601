package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/okian/dugout/internal/adapters/repository"
	"github.com/okian/dugout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func openDrivers(t *testing.T) map[string]repository.OverrideStore {
	ctx := context.Background()
	dir := t.TempDir()
	stores := map[string]repository.OverrideStore{}
	for _, driver := range []string{repository.DriverMemory, repository.DriverSQLite, repository.DriverBolt} {
		store, err := repository.Open(ctx, driver, filepath.Join(dir, driver, "overrides.db"))
		if err != nil {
			t.Fatalf("open %s: %v", driver, err)
		}
		t.Cleanup(func() { _ = store.Close() })
		stores[driver] = store
	}
	return stores
}

func TestOverrideStoreContract(t *testing.T) {
	for driver, store := range openDrivers(t) {
		Convey("Given an empty "+driver+" store", t, func() {
			ctx := context.Background()

			Convey("When listing", func() {
				all, err := store.ListAll(ctx)

				Convey("Then no records are returned", func() {
					So(err, ShouldBeNil)
					So(all, ShouldBeEmpty)
				})
			})

			Convey("When getting an unknown id", func() {
				_, ok, err := store.Get(ctx, "nobody-0")

				Convey("Then it is absent without error", func() {
					So(err, ShouldBeNil)
					So(ok, ShouldBeFalse)
				})
			})

			Convey("When upserting with an empty id", func() {
				_, err := store.Upsert(ctx, " ", model.Override{Hits: model.Ptr(1)})

				Convey("Then it is rejected", func() {
					So(errors.Is(err, repository.ErrInvalidID), ShouldBeTrue)
				})
			})
		})

		Convey("Given a "+driver+" store with one upsert", t, func() {
			ctx := context.Background()
			id := "upsert-" + driver + "-0"
			created, err := store.Upsert(ctx, id, model.Override{Hits: model.Ptr(10), Name: model.Ptr("Babe Ruth")})
			So(err, ShouldBeNil)
			So(*created.Hits, ShouldEqual, 10)

			Convey("When a second patch touches a different field", func() {
				stored, err := store.Upsert(ctx, id, model.Override{HomeRuns: model.Ptr(5)})

				Convey("Then both fields are retained", func() {
					So(err, ShouldBeNil)
					So(*stored.Hits, ShouldEqual, 10)
					So(*stored.HomeRuns, ShouldEqual, 5)
					So(*stored.Name, ShouldEqual, "Babe Ruth")
				})

				Convey("And Get and ListAll agree with the stored record", func() {
					got, ok, err := store.Get(ctx, id)
					So(err, ShouldBeNil)
					So(ok, ShouldBeTrue)
					So(got, ShouldResemble, stored)

					all, err := store.ListAll(ctx)
					So(err, ShouldBeNil)
					So(all[id], ShouldResemble, stored)
				})
			})

			Convey("When a patch replaces an existing field", func() {
				stored, err := store.Upsert(ctx, id, model.Override{Hits: model.Ptr(12)})

				Convey("Then the new value wins", func() {
					So(err, ShouldBeNil)
					So(*stored.Hits, ShouldEqual, 12)
				})
			})

			Convey("When a description is stored", func() {
				stored, err := store.Upsert(ctx, id, model.Override{Description: model.Ptr("Hits for power.")})

				Convey("Then it persists beside the stats", func() {
					So(err, ShouldBeNil)
					So(*stored.Description, ShouldEqual, "Hits for power.")
					So(stored.Hits, ShouldNotBeNil)
				})
			})
		})
	}
}

func TestOverrideStoreConcurrentUpserts(t *testing.T) {
	for driver, store := range openDrivers(t) {
		Convey("Given concurrent patches to one "+driver+" record", t, func() {
			ctx := context.Background()
			id := "race-" + driver + "-0"
			patches := []model.Override{
				{Games: model.Ptr(1)},
				{Runs: model.Ptr(2)},
				{Hits: model.Ptr(3)},
				{Walks: model.Ptr(4)},
			}

			var wg sync.WaitGroup
			for _, p := range patches {
				wg.Add(1)
				go func(p model.Override) {
					defer wg.Done()
					_, _ = store.Upsert(ctx, id, p)
				}(p)
			}
			wg.Wait()

			Convey("Then every patch is applied", func() {
				got, ok, err := store.Get(ctx, id)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(*got.Games, ShouldEqual, 1)
				So(*got.Runs, ShouldEqual, 2)
				So(*got.Hits, ShouldEqual, 3)
				So(*got.Walks, ShouldEqual, 4)
			})
		})
	}
}

func TestOpen(t *testing.T) {
	Convey("Given an unknown driver", t, func() {
		_, err := repository.Open(context.Background(), "mongo", "")

		Convey("Then Open fails", func() {
			So(errors.Is(err, repository.ErrUnknownDriver), ShouldBeTrue)
		})
	})

	Convey("Given a sqlite file that is reopened", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "nested", "dugout.db")

		store, err := repository.Open(ctx, repository.DriverSQLite, path)
		So(err, ShouldBeNil)
		_, err = store.Upsert(ctx, "babe-ruth-0", model.Override{HomeRuns: model.Ptr(715)})
		So(err, ShouldBeNil)
		So(store.Close(), ShouldBeNil)

		reopened, err := repository.Open(ctx, repository.DriverSQLite, path)
		So(err, ShouldBeNil)
		defer reopened.Close()

		Convey("Then records survive the restart", func() {
			got, ok, err := reopened.Get(ctx, "babe-ruth-0")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(*got.HomeRuns, ShouldEqual, 715)
		})
	})

	Convey("Given a closed memory store", t, func() {
		store := repository.NewMemoryStore()
		So(store.Close(), ShouldBeNil)

		_, err := store.ListAll(context.Background())
		So(errors.Is(err, repository.ErrClosed), ShouldBeTrue)
	})
}
