package output

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chrisdamba/foodstore/internal/cloudwriter"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

type memoryCloudWriter struct {
	buf    *bytes.Buffer
	closed bool
}

func (m *memoryCloudWriter) Write(p []byte) (int, error) { return m.buf.Write(p) }

func (m *memoryCloudWriter) Close() error {
	m.closed = true
	return nil
}

type memoryFactory struct {
	bucket, key string
	writer      *memoryCloudWriter
}

func (f *memoryFactory) NewWriter(_ context.Context, bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	f.bucket, f.key = bucket, objectPath
	f.writer = &memoryCloudWriter{buf: &bytes.Buffer{}}
	return f.writer, nil
}

func testRows() []OrderRow {
	return []OrderRow{
		RowFromPlaced(placedOrder()),
		RowFromOrder(models.Order{
			ID:             "order-2",
			RestaurantID:   "2",
			RestaurantName: "Pizza da Nonna",
			Status:         models.OrderStatusDelivered,
			Items:          []models.OrderItem{{MenuItemID: "201", Quantity: 2}},
			Subtotal:       21.80,
			DeliveryFee:    2.50,
			ServiceFee:     1.00,
			Total:          25.30,
			PaymentMethod:  "cash",
			CreatedAt:      time.Date(2024, 5, 2, 19, 0, 0, 0, time.UTC),
		}),
	}
}

func TestRowFromPlaced(t *testing.T) {
	row := RowFromPlaced(placedOrder())

	assert.Equal(t, "order-1", row.OrderID)
	assert.Equal(t, "Taberna Real", row.RestaurantName)
	assert.Equal(t, models.OrderStatusConfirmed, row.Status)
	assert.Equal(t, int32(3), row.ItemCount)
	assert.Equal(t, int64(1714566600000), row.CreatedAt)
}

func TestParquetExporter_Local(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewParquetExporter(context.Background(), &models.Config{
		OutputDestination: "local",
		OutputPath:        dir,
		OutputFolder:      "exports",
	}, nil)
	require.NoError(t, err)
	exporter.now = func() time.Time { return time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC) }

	location, err := exporter.Export(context.Background(), testRows())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "orders", "year=2024", "month=05", "day=03", "orders-1714723200.parquet"), location)

	fr, err := local.NewLocalFileReader(location)
	require.NoError(t, err)
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(OrderRow), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.Equal(t, int64(2), pr.GetNumRows())
	rows := make([]OrderRow, 2)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, testRows(), rows)
}

func TestParquetExporter_Cloud(t *testing.T) {
	factory := &memoryFactory{}
	exporter := NewCloudParquetExporter(factory, "order-exports", "exports")
	exporter.now = func() time.Time { return time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC) }

	key, err := exporter.Export(context.Background(), testRows())
	require.NoError(t, err)

	assert.Equal(t, "order-exports", factory.bucket)
	assert.Equal(t, "exports/orders/year=2024/month=05/day=03/orders-1714723200.parquet", key)
	assert.True(t, factory.writer.closed)
	data := factory.writer.buf.String()
	assert.True(t, strings.HasPrefix(data, "PAR1"))
	assert.True(t, strings.HasSuffix(data, "PAR1"))
}

func TestCloudParquetFile_Seek(t *testing.T) {
	f := NewCloudParquetFile(&memoryCloudWriter{buf: &bytes.Buffer{}})

	_, err := f.Write([]byte("abcd"))
	require.NoError(t, err)
	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	_, err = f.Seek(0, 2)
	assert.Error(t, err)
	_, err = f.Read(make([]byte, 1))
	assert.Error(t, err)
}
