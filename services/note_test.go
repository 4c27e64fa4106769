package services

import (
	"errors"
	"testing"
	"time"

	"auto-control-backend/models"
	"auto-control-backend/utils"
)

func TestNoteCreateDerivesPrices(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Carlos Silva")
	car := seedCar(t, db, customer.Id)
	p1 := seedPart(t, db, "Filtro de óleo", 50)
	p2 := seedPart(t, db, "Vela de ignição", 25)

	svc := NewNoteService(db)
	note, err := svc.Create(NoteInput{
		CustomerId: customer.Id,
		CarId:      car.Id,
		LaborPrice: 100,
		Status:     models.NoteStatusOpen,
		Parts: []NoteItemInput{
			{PartId: p1.Id, Quantity: 2, Price: 50},
			{PartId: p2.Id, Quantity: 1, Price: 25},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if note.PartsPrice != 125 {
		t.Errorf("parts price = %v, want 125", note.PartsPrice)
	}
	if note.TotalPrice != 225 {
		t.Errorf("total price = %v, want 225", note.TotalPrice)
	}
	if note.TotalPrice != note.LaborPrice+note.PartsPrice {
		t.Errorf("total %v != labor %v + parts %v", note.TotalPrice, note.LaborPrice, note.PartsPrice)
	}
	if got := countNoteItems(t, db, note.Id); got != 2 {
		t.Errorf("persisted items = %d, want 2", got)
	}
}

func TestNoteSubCentPricesStayConsistent(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Juliana Ferreira")
	car := seedCar(t, db, customer.Id)
	part := seedPart(t, db, "Abraçadeira", 10)

	svc := NewNoteService(db)
	note, err := svc.Create(NoteInput{
		CustomerId: customer.Id,
		CarId:      car.Id,
		LaborPrice: 0,
		Status:     models.NoteStatusOpen,
		Parts:      []NoteItemInput{{PartId: part.Id, Quantity: 2, Price: 10.005}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The aggregate must equal the sum over the lines as persisted, not
	// over the raw sub-cent input.
	var items []models.PartInNote
	if err := db.Where("note_id = ?", note.Id).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	if note.PartsPrice != utils.Round2(sum) {
		t.Errorf("parts price %v != sum over stored items %v", note.PartsPrice, sum)
	}
	if note.TotalPrice != note.LaborPrice+note.PartsPrice {
		t.Errorf("total %v != labor %v + parts %v", note.TotalPrice, note.LaborPrice, note.PartsPrice)
	}

	// Same invariant after a replace-all update.
	updated, err := svc.Update(note.Id, NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 0,
		Status: models.NoteStatusOpen,
		Parts:  []NoteItemInput{{PartId: part.Id, Quantity: 3, Price: 5.555}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	items = nil
	if err := db.Where("note_id = ?", note.Id).Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	sum = 0
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	if updated.PartsPrice != utils.Round2(sum) {
		t.Errorf("parts price %v != sum over stored items %v after update", updated.PartsPrice, sum)
	}
	if len(items) != 1 || items[0].Price != 5.55 {
		t.Errorf("stored line price = %+v, want one line at 5.55", items)
	}
}

func TestNoteCreateEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Ana Oliveira")
	car := seedCar(t, db, customer.Id)

	svc := NewNoteService(db)
	note, err := svc.Create(NoteInput{
		CustomerId: customer.Id,
		CarId:      car.Id,
		LaborPrice: 80,
		Status:     models.NoteStatusOpen,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.PartsPrice != 0 || note.TotalPrice != 80 {
		t.Errorf("parts=%v total=%v, want 0/80", note.PartsPrice, note.TotalPrice)
	}
}

func TestNoteCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Roberto Santos")
	car := seedCar(t, db, customer.Id)
	part := seedPart(t, db, "Pastilha de freio", 90)
	svc := NewNoteService(db)

	cases := []struct {
		name  string
		input NoteInput
	}{
		{"negative labor price", NoteInput{CustomerId: customer.Id, CarId: car.Id, LaborPrice: -1, Status: models.NoteStatusOpen}},
		{"unknown status", NoteInput{CustomerId: customer.Id, CarId: car.Id, Status: "REOPENED"}},
		{"zero quantity", NoteInput{CustomerId: customer.Id, CarId: car.Id, Status: models.NoteStatusOpen,
			Parts: []NoteItemInput{{PartId: part.Id, Quantity: 0, Price: 10}}}},
		{"negative item price", NoteInput{CustomerId: customer.Id, CarId: car.Id, Status: models.NoteStatusOpen,
			Parts: []NoteItemInput{{PartId: part.Id, Quantity: 1, Price: -10}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.input)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestNoteUpdateReplacesItems(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Fernanda Costa")
	car := seedCar(t, db, customer.Id)
	p1 := seedPart(t, db, "Correia dentada", 120)
	p2 := seedPart(t, db, "Amortecedor", 300)

	svc := NewNoteService(db)
	note, err := svc.Create(NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 50,
		Status: models.NoteStatusOpen,
		Parts:  []NoteItemInput{{PartId: p1.Id, Quantity: 1, Price: 120}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replacement := NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 50,
		Status: models.NoteStatusPaid,
		Parts:  []NoteItemInput{{PartId: p2.Id, Quantity: 2, Price: 300}},
	}
	updated, err := svc.Update(note.Id, replacement)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PartsPrice != 600 || updated.TotalPrice != 650 {
		t.Errorf("parts=%v total=%v, want 600/650", updated.PartsPrice, updated.TotalPrice)
	}
	if updated.Status != models.NoteStatusPaid {
		t.Errorf("status = %s, want PAID", updated.Status)
	}
	if got := countNoteItems(t, db, note.Id); got != 1 {
		t.Errorf("items after replace = %d, want 1", got)
	}

	// Same payload again: a true replace, not an append.
	if _, err := svc.Update(note.Id, replacement); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if got := countNoteItems(t, db, note.Id); got != 1 {
		t.Errorf("items after repeated update = %d, want 1", got)
	}
}

func TestNoteUpdateEmptyItemsZeroesPartsPrice(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Pedro Almeida")
	car := seedCar(t, db, customer.Id)
	part := seedPart(t, db, "Bateria", 450)

	svc := NewNoteService(db)
	note, err := svc.Create(NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 100,
		Status: models.NoteStatusOpen,
		Parts:  []NoteItemInput{{PartId: part.Id, Quantity: 1, Price: 450}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(note.Id, NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 100,
		Status: models.NoteStatusOpen,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PartsPrice != 0 || updated.TotalPrice != 100 {
		t.Errorf("parts=%v total=%v, want 0/100", updated.PartsPrice, updated.TotalPrice)
	}
	if got := countNoteItems(t, db, note.Id); got != 0 {
		t.Errorf("items after empty replace = %d, want 0", got)
	}
}

func TestNoteUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Juliana Ferreira")
	car := seedCar(t, db, customer.Id)

	svc := NewNoteService(db)
	_, err := svc.Update("missing", NoteInput{
		CustomerId: customer.Id, CarId: car.Id, Status: models.NoteStatusOpen,
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestNoteDeleteCascadesItems(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Carlos Silva")
	car := seedCar(t, db, customer.Id)
	part := seedPart(t, db, "Radiador", 280)

	svc := NewNoteService(db)
	note, err := svc.Create(NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 150,
		Status: models.NoteStatusOpen,
		Parts: []NoteItemInput{
			{PartId: part.Id, Quantity: 1, Price: 280},
			{PartId: part.Id, Quantity: 2, Price: 560},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(note.Id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := countNoteItems(t, db, note.Id); got != 0 {
		t.Errorf("orphaned items = %d, want 0", got)
	}
	if _, err := svc.Get(note.Id); err == nil {
		t.Fatal("expected not found after delete")
	}

	var nf *NotFoundError
	if err := svc.Delete(note.Id); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}

func TestNoteGetAssemblesRelations(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Ana Oliveira")
	car := seedCar(t, db, customer.Id)
	part := seedPart(t, db, "Filtro de ar", 35)

	svc := NewNoteService(db)
	created, err := svc.Create(NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 60,
		Status: models.NoteStatusOpen,
		Parts:  []NoteItemInput{{PartId: part.Id, Quantity: 1, Price: 35}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	note, err := svc.Get(created.Id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if note.Customer == nil || note.Customer.Name != customer.Name {
		t.Errorf("customer not assembled: %+v", note.Customer)
	}
	if note.Car == nil || note.Car.Brand != car.Brand {
		t.Errorf("car not assembled: %+v", note.Car)
	}
	if len(note.Parts) != 1 || note.Parts[0].Part == nil || note.Parts[0].Part.Name != part.Name {
		t.Errorf("items not assembled with parts: %+v", note.Parts)
	}
}

func TestNoteListFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Roberto Santos")
	other := seedCustomer(t, db, "Fernanda Costa")
	car := seedCar(t, db, customer.Id)
	otherCar := seedCar(t, db, other.Id)

	svc := NewNoteService(db)
	for i := 0; i < 12; i++ {
		status := models.NoteStatusPaid
		customerId, carId := customer.Id, car.Id
		if i%3 == 0 {
			status = models.NoteStatusOpen
		}
		if i >= 10 {
			customerId, carId = other.Id, otherCar.Id
		}
		if _, err := svc.Create(NoteInput{
			CustomerId: customerId, CarId: carId,
			LaborPrice: float64(10 * (i + 1)), Status: status,
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// Status filter only returns PAID notes.
	page, err := svc.List(NoteListParams{Status: models.NoteStatusPaid, ItemsPerPage: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.TotalItems != 8 {
		t.Errorf("total PAID = %d, want 8", page.Pagination.TotalItems)
	}
	if len(page.Data) != 5 {
		t.Errorf("page size = %d, want 5", len(page.Data))
	}
	for _, note := range page.Data {
		if note.Status != models.NoteStatusPaid {
			t.Errorf("note %s status = %s, want PAID", note.Id, note.Status)
		}
	}
	if !page.Pagination.HasNext || page.Pagination.HasPrev {
		t.Errorf("pagination flags = %+v, want hasNext/!hasPrev", page.Pagination)
	}

	// Filters are a conjunction.
	page, err = svc.List(NoteListParams{CustomerId: customer.Id, Status: models.NoteStatusOpen})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.TotalItems != 4 {
		t.Errorf("customer OPEN notes = %d, want 4", page.Pagination.TotalItems)
	}

	// Last page flags.
	page, err = svc.List(NoteListParams{Page: 2, ItemsPerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Data) != 2 || page.Pagination.HasNext || !page.Pagination.HasPrev {
		t.Errorf("last page = %d items, flags %+v", len(page.Data), page.Pagination)
	}

	// Ordering by laborPrice ascending.
	page, err = svc.List(NoteListParams{OrderBy: "laborPrice", OrderDirection: "asc", ItemsPerPage: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(page.Data); i++ {
		if page.Data[i-1].LaborPrice > page.Data[i].LaborPrice {
			t.Errorf("not sorted ascending: %v then %v", page.Data[i-1].LaborPrice, page.Data[i].LaborPrice)
		}
	}
}

func TestNoteListDateRangeInclusive(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Pedro Almeida")
	car := seedCar(t, db, customer.Id)

	svc := NewNoteService(db)
	note, err := svc.Create(NoteInput{
		CustomerId: customer.Id, CarId: car.Id, LaborPrice: 100,
		Status: models.NoteStatusOpen,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	day := note.CreatedAt.Truncate(24 * time.Hour)

	// dateRangeTo equal to the creation day still includes the note.
	page, err := svc.List(NoteListParams{DateRangeFrom: day, DateRangeTo: day})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.TotalItems != 1 {
		t.Errorf("notes in creation-day range = %d, want 1", page.Pagination.TotalItems)
	}

	// A range ending the day before excludes it.
	page, err = svc.List(NoteListParams{DateRangeTo: day.AddDate(0, 0, -1)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.TotalItems != 0 {
		t.Errorf("notes before creation day = %d, want 0", page.Pagination.TotalItems)
	}
}
