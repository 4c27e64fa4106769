package database

import (
	"fmt"

	"auto-control-backend/models"

	"gorm.io/gorm"
)

// AutoMigrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Foreign keys: cars/notes/part_in_notes references (RESTRICT)
// - Basic CHECK constraints (non-negative prices, quantity >= 1)
func AutoMigrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Customer{},
			&models.Car{},
			&models.Part{},
			&models.Note{},
			&models.PartInNote{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE parts         ALTER COLUMN price       TYPE numeric(12,2)`,
			`ALTER TABLE notes         ALTER COLUMN labor_price TYPE numeric(12,2)`,
			`ALTER TABLE notes         ALTER COLUMN parts_price TYPE numeric(12,2)`,
			`ALTER TABLE notes         ALTER COLUMN total_price TYPE numeric(12,2)`,
			`ALTER TABLE part_in_notes ALTER COLUMN price       TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign keys (RESTRICT so deletes stay in the services' hands) ---
		fks := []struct{ constraint, stmt string }{
			{"fk_cars_customer", `ALTER TABLE cars ADD CONSTRAINT fk_cars_customer
				FOREIGN KEY (customer_id) REFERENCES customers(id)
				ON UPDATE RESTRICT ON DELETE RESTRICT`},
			{"fk_notes_customer", `ALTER TABLE notes ADD CONSTRAINT fk_notes_customer
				FOREIGN KEY (customer_id) REFERENCES customers(id)
				ON UPDATE RESTRICT ON DELETE RESTRICT`},
			{"fk_notes_car", `ALTER TABLE notes ADD CONSTRAINT fk_notes_car
				FOREIGN KEY (car_id) REFERENCES cars(id)
				ON UPDATE RESTRICT ON DELETE RESTRICT`},
			{"fk_part_in_notes_note", `ALTER TABLE part_in_notes ADD CONSTRAINT fk_part_in_notes_note
				FOREIGN KEY (note_id) REFERENCES notes(id)
				ON UPDATE RESTRICT ON DELETE RESTRICT`},
			{"fk_part_in_notes_part", `ALTER TABLE part_in_notes ADD CONSTRAINT fk_part_in_notes_part
				FOREIGN KEY (part_id) REFERENCES parts(id)
				ON UPDATE RESTRICT ON DELETE RESTRICT`},
		}
		for _, fk := range fks {
			stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conname = '%s'
	) THEN
		%s;
	END IF;
END $$;`, fk.constraint, fk.stmt)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration failed on %s: %w", fk.constraint, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []struct{ constraint, table, check string }{
			{"chk_parts_price_nonneg", "parts", "price >= 0"},
			{"chk_notes_labor_price_nonneg", "notes", "labor_price >= 0"},
			{"chk_notes_parts_price_nonneg", "notes", "parts_price >= 0"},
			{"chk_part_in_notes_price_nonneg", "part_in_notes", "price >= 0"},
			{"chk_part_in_notes_quantity_min", "part_in_notes", "quantity >= 1"},
		}
		for _, c := range checks {
			stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%s'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, c.table, c.constraint, c.table, c.constraint, c.check)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed on %s: %w", c.constraint, err)
			}
		}

		return nil
	})
}
