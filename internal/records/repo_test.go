package records

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dmatoso/checkpix-backend/pkg/db/models"
)

func setupRecordsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS records (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL,
  name TEXT NOT NULL,
  cpf_cnpj TEXT NOT NULL DEFAULT '',
  order_number TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  number TEXT NOT NULL DEFAULT '',
  complement TEXT,
  reference TEXT,
  bairro TEXT NOT NULL DEFAULT '',
  state_city TEXT NOT NULL DEFAULT '',
  zip_code TEXT NOT NULL DEFAULT '',
  product TEXT NOT NULL DEFAULT '',
  valor NUMERIC NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pendente',
  active INTEGER NOT NULL DEFAULT 1,
  used INTEGER NOT NULL DEFAULT 0,
  pix_code TEXT NOT NULL DEFAULT '',
  qr_code_path TEXT,
  observations TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	return db
}

func testRecord(code string, active bool) *models.Record {
	return &models.Record{
		Code:        code,
		Name:        "Maria Silva",
		CPFCNPJ:     "123.456.789-00",
		OrderNumber: uuid.NewString()[:8],
		Address:     "Rua das Flores",
		Number:      "42",
		Bairro:      "Centro",
		StateCity:   "SP - São Paulo",
		ZipCode:     "01000-000",
		Product:     "Fone Bluetooth",
		Valor:       decimal.NewFromFloat(199.90),
		Status:      "pendente",
		Active:      active,
		PixCode:     "00020126pixpayload",
	}
}

func TestRepositoryCreateAssignsID(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))

	record := testRecord("ABC123", true)
	require.NoError(t, repo.Create(context.Background(), record))
	assert.NotEqual(t, uuid.Nil, record.ID)
}

func TestRepositoryFindFirstActiveByCode(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))
	ctx := context.Background()

	inactive := testRecord("ABC123", false)
	require.NoError(t, repo.Create(ctx, inactive))
	first := testRecord("ABC123", true)
	require.NoError(t, repo.Create(ctx, first))
	second := testRecord("ABC123", true)
	require.NoError(t, repo.Create(ctx, second))

	found, err := repo.FindFirstActiveByCode(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID, "first active match wins")

	_, err = repo.FindFirstActiveByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindFirstActiveByCodeIgnoresInactive(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))
	ctx := context.Background()

	record := testRecord("ABC123", false)
	require.NoError(t, repo.Create(ctx, record))

	_, err := repo.FindFirstActiveByCode(ctx, "ABC123")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindFirstActiveByCodeCaseSensitive(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRecord("abc123", true)))

	_, err := repo.FindFirstActiveByCode(ctx, "ABC123")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListFilters(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))
	ctx := context.Background()

	maria := testRecord("AAA111", true)
	require.NoError(t, repo.Create(ctx, maria))

	joao := testRecord("BBB222", true)
	joao.Name = "João Souza"
	joao.CPFCNPJ = "987.654.321-00"
	require.NoError(t, repo.Create(ctx, joao))

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := repo.List(ctx, ListFilter{Query: "João"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, joao.ID, byName[0].ID)

	byCode, err := repo.List(ctx, ListFilter{Query: "AAA"})
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, maria.ID, byCode[0].ID)

	byCPF, err := repo.List(ctx, ListFilter{Query: "987.654"})
	require.NoError(t, err)
	require.Len(t, byCPF, 1)
	assert.Equal(t, joao.ID, byCPF[0].ID)

	future := time.Now().Add(time.Hour)
	none, err := repo.List(ctx, ListFilter{CreatedFrom: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryUpdateArtifacts(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))
	ctx := context.Background()

	record := testRecord("ABC123", true)
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.UpdateArtifacts(ctx, record.ID, record.PixCode, "/qrcodes/qrcode_1001.png"))

	stored, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.QRCodePath)
	assert.Equal(t, "/qrcodes/qrcode_1001.png", *stored.QRCodePath)
	assert.Equal(t, record.PixCode, stored.PixCode)
}

func TestRepositorySetActiveAndDelete(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))
	ctx := context.Background()

	record := testRecord("ABC123", true)
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.SetActive(ctx, record.ID, false))
	stored, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	require.NoError(t, repo.Delete(ctx, record.ID))
	_, err = repo.FindByID(ctx, record.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryStats(t *testing.T) {
	repo := NewRepository(setupRecordsTestDB(t))
	ctx := context.Background()

	pending := testRecord("AAA111", true)
	require.NoError(t, repo.Create(ctx, pending))

	approved := testRecord("BBB222", true)
	approved.Status = "aprovado"
	approved.Valor = decimal.NewFromInt(100)
	require.NoError(t, repo.Create(ctx, approved))

	inactive := testRecord("CCC333", false)
	inactive.Valor = decimal.NewFromInt(50)
	require.NoError(t, repo.Create(ctx, inactive))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(2), stats.Pending)
	assert.True(t, stats.TotalValue.Equal(decimal.NewFromFloat(349.90)), "total value = %s", stats.TotalValue)
}
