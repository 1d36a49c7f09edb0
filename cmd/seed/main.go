// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"labstock/internal/config"
	"labstock/internal/domain/records/batch"
	"labstock/internal/domain/records/equipment"
	"labstock/internal/domain/records/experiment"
	"labstock/internal/domain/records/reagent"
	"labstock/internal/domain/records/user"
	"labstock/internal/infrastructure/storage/postgres"
	"labstock/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	inserter := postgres.NewBulkInserter(txManager)

	err = txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		users := seedUsers()
		if err := copyRecords(ctx, inserter, "inv_users", users); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		reagents := seedReagents()
		if err := copyRecords(ctx, inserter, "inv_reagents", reagents); err != nil {
			return fmt.Errorf("seed reagents: %w", err)
		}

		batches := seedBatches(reagents)
		if err := copyRecords(ctx, inserter, "inv_batches", batches); err != nil {
			return fmt.Errorf("seed batches: %w", err)
		}

		instruments := seedEquipment()
		if err := copyRecords(ctx, inserter, "inv_equipment", instruments); err != nil {
			return fmt.Errorf("seed equipment: %w", err)
		}

		experiments := seedExperiments(users)
		if err := copyRecords(ctx, inserter, "inv_experiments", experiments); err != nil {
			return fmt.Errorf("seed experiments: %w", err)
		}

		log.Infow("seed complete",
			"users", len(users),
			"reagents", len(reagents),
			"batches", len(batches),
			"equipment", len(instruments),
			"experiments", len(experiments),
		)
		return nil
	})
	if err != nil {
		log.Fatalw("seeding failed", "error", err)
	}
}

// copyRecords bulk-loads records through the COPY protocol. Column order
// comes from the struct's db tags, so values line up positionally.
func copyRecords[T any](ctx context.Context, inserter *postgres.BulkInserter, table string, records []*T) error {
	columns := postgres.ExtractDBColumns[T]()

	rows := make([][]any, len(records))
	for i, record := range records {
		m := postgres.StructToMap(record)
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = m[col]
		}
		rows[i] = row
	}

	_, err := inserter.CopyRows(ctx, table, columns, rows)
	return err
}

func ptr[T any](v T) *T { return &v }

func seedUsers() []*user.User {
	mk := func(code, name, email string, role user.Role) *user.User {
		u := user.NewUser(code, name, email, role)
		if err := u.SetPassword("changeme123"); err != nil {
			panic(err)
		}
		return u
	}

	return []*user.User{
		mk("USR-001", "Ada Park", "ada.park@lab.local", user.RoleAdmin),
		mk("USR-002", "Brice Kim", "brice.kim@lab.local", user.RoleManager),
		mk("USR-003", "Chen Osei", "chen.osei@lab.local", user.RoleTechnician),
		mk("USR-004", "Dana Ruiz", "dana.ruiz@lab.local", user.RoleViewer),
	}
}

func seedReagents() []*reagent.Reagent {
	nacl := reagent.NewReagent("RG-001", "Sodium chloride", reagent.UnitGram)
	nacl.CASNumber = ptr("7647-14-5")
	nacl.MinStock = decimal.NewFromInt(500)
	nacl.Supplier = ptr("Sigma-Aldrich")
	nacl.Location = ptr("shelf A1")

	etoh := reagent.NewReagent("RG-002", "Ethanol 96%", reagent.UnitMilliliter)
	etoh.CASNumber = ptr("64-17-5")
	etoh.HazardClass = reagent.HazardFlammable
	etoh.MinStock = decimal.NewFromInt(1000)
	etoh.StorageConditions = ptr("flammables cabinet")

	hcl := reagent.NewReagent("RG-003", "Hydrochloric acid 37%", reagent.UnitMilliliter)
	hcl.CASNumber = ptr("7647-01-0")
	hcl.HazardClass = reagent.HazardCorrosive
	hcl.MinStock = decimal.NewFromInt(250)
	hcl.StorageConditions = ptr("acid cabinet, ventilated")

	agarose := reagent.NewReagent("RG-004", "Agarose", reagent.UnitGram)
	agarose.CASNumber = ptr("9012-36-6")
	agarose.MinStock = decimal.NewFromInt(100)

	return []*reagent.Reagent{nacl, etoh, hcl, agarose}
}

func seedBatches(reagents []*reagent.Reagent) []*batch.Batch {
	now := time.Now().UTC()

	var batches []*batch.Batch
	for i, r := range reagents {
		b := batch.NewBatch(
			fmt.Sprintf("BT-%03d", i+1),
			r.ID,
			fmt.Sprintf("LOT-2026-%03d", i+1),
			decimal.NewFromInt(int64(250*(i+1))),
			r.Unit,
		)
		b.ReceivedAt = now.AddDate(0, -i, 0)
		b.ExpiresAt = ptr(now.AddDate(1, -i*3, 0))
		b.Location = r.Location
		batches = append(batches, b)
	}

	// One nearly-expired batch for the expiring_soon preset to find.
	short := batch.NewBatch("BT-099", reagents[1].ID, "LOT-2026-099",
		decimal.NewFromInt(50), reagents[1].Unit)
	short.ReceivedAt = now.AddDate(0, -6, 0)
	short.ExpiresAt = ptr(now.AddDate(0, 0, 5))
	batches = append(batches, short)

	return batches
}

func seedEquipment() []*equipment.Equipment {
	now := time.Now().UTC()

	centrifuge := equipment.NewEquipment("EQ-001", "Eppendorf 5424R", equipment.TypeCentrifuge)
	centrifuge.SerialNumber = ptr("5424R-18802")
	centrifuge.CalibrationDue = ptr(now.AddDate(0, 3, 0))
	centrifuge.Location = ptr("bench 2")

	incubator := equipment.NewEquipment("EQ-002", "CO2 incubator", equipment.TypeIncubator)
	incubator.SerialNumber = ptr("INC-99214")
	incubator.CalibrationDue = ptr(now.AddDate(0, 0, 14))

	balance := equipment.NewEquipment("EQ-003", "Analytical balance", equipment.TypeBalance)
	balance.SerialNumber = ptr("AB-20331")
	balance.CalibrationDue = ptr(now.AddDate(0, 1, 0))
	balance.Location = ptr("weighing room")

	return []*equipment.Equipment{centrifuge, incubator, balance}
}

func seedExperiments(users []*user.User) []*experiment.Experiment {
	lead := users[1] // manager

	plasmid := experiment.NewExperiment("EXP-001", "Plasmid prep optimization", lead.ID)
	plasmid.Notes = ptr("comparing lysis buffer volumes")

	gel := experiment.NewExperiment("EXP-002", "Agarose gel calibration", users[2].ID)

	return []*experiment.Experiment{plasmid, gel}
}
