package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/chrisdamba/foodstore/internal/cloudwriter"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// OrderRow is the flat parquet record of one order.
type OrderRow struct {
	OrderID        string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RestaurantID   string  `parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RestaurantName string  `parquet:"name=restaurant_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Status         string  `parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ItemCount      int32   `parquet:"name=item_count, type=INT32"`
	Subtotal       float64 `parquet:"name=subtotal, type=DOUBLE"`
	DeliveryFee    float64 `parquet:"name=delivery_fee, type=DOUBLE"`
	ServiceFee     float64 `parquet:"name=service_fee, type=DOUBLE"`
	Total          float64 `parquet:"name=total, type=DOUBLE"`
	PaymentMethod  string  `parquet:"name=payment_method, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	City           string  `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8"`
	CreatedAt      int64   `parquet:"name=created_at, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

// RowFromOrder flattens a backend order.
func RowFromOrder(o models.Order) OrderRow {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return OrderRow{
		OrderID:        o.ID,
		RestaurantID:   o.RestaurantID,
		RestaurantName: o.RestaurantName,
		Status:         o.Status,
		ItemCount:      int32(count),
		Subtotal:       o.Subtotal,
		DeliveryFee:    o.DeliveryFee,
		ServiceFee:     o.ServiceFee,
		Total:          o.Total,
		PaymentMethod:  o.PaymentMethod,
		City:           o.DeliveryAddress.City,
		CreatedAt:      o.CreatedAt.UnixMilli(),
	}
}

// RowFromPlaced flattens a locally recorded order.
func RowFromPlaced(p models.PlacedOrder) OrderRow {
	e := NewOrderPlacedEvent(p)
	row := OrderRow{
		OrderID:       e.OrderID,
		RestaurantID:  e.RestaurantID,
		Status:        models.OrderStatusPending,
		ItemCount:     int32(e.ItemCount),
		Subtotal:      e.Subtotal,
		DeliveryFee:   e.DeliveryFee,
		ServiceFee:    e.ServiceFee,
		Total:         e.Total,
		PaymentMethod: e.PaymentMethod,
		City:          e.City,
		CreatedAt:     p.PlacedAt.UnixMilli(),
	}
	if p.Order != nil {
		row.RestaurantName = p.Order.RestaurantName
		if p.Order.Status != "" {
			row.Status = p.Order.Status
		}
	}
	return row
}

// ParquetExporter writes order rows to a partitioned parquet file, either on
// the local disk or in a cloud bucket.
type ParquetExporter struct {
	basePath           string
	folder             string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	progress           io.Writer
	now                func() time.Time
}

func NewParquetExporter(ctx context.Context, config *models.Config, progress io.Writer) (*ParquetExporter, error) {
	p := &ParquetExporter{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		progress: progress,
		now:      time.Now,
	}

	if config.OutputDestination != "local" {
		factory, err := cloudwriter.NewFactory(ctx, config.CloudStorage)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		p.cloudWriterFactory = factory
		p.cloudBucketName = config.CloudStorage.BucketName
	}
	return p, nil
}

// NewCloudParquetExporter exports into bucket through factory.
func NewCloudParquetExporter(factory cloudwriter.CloudWriterFactory, bucket, folder string) *ParquetExporter {
	return &ParquetExporter{
		folder:             folder,
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
		now:                time.Now,
	}
}

// Export writes rows and returns the file path or object key.
func (p *ParquetExporter) Export(ctx context.Context, rows []OrderRow) (string, error) {
	ts := p.now().UTC()
	partition := fmt.Sprintf("year=%d/month=%02d/day=%02d", ts.Year(), ts.Month(), ts.Day())
	name := fmt.Sprintf("orders-%d.parquet", ts.Unix())

	fw, location, err := p.createFile(ctx, partition, name)
	if err != nil {
		return "", err
	}

	pw, err := writer.NewParquetWriter(fw, new(OrderRow), 4)
	if err != nil {
		_ = fw.Close()
		return "", fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	bar := p.progressBar(len(rows))
	for i := range rows {
		if err := ctx.Err(); err != nil {
			_ = fw.Close()
			return "", err
		}
		if err := pw.Write(rows[i]); err != nil {
			_ = fw.Close()
			return "", fmt.Errorf("failed to write order %s: %w", rows[i].OrderID, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return "", fmt.Errorf("failed to finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", location, err)
	}
	return location, nil
}

func (p *ParquetExporter) createFile(ctx context.Context, partition, name string) (source.ParquetFile, string, error) {
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, "orders", partition, name)
		cloudWriter, err := p.cloudWriterFactory.NewWriter(ctx, p.cloudBucketName, objectPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cloudWriter), objectPath, nil
	}

	fullPath := filepath.Join(p.basePath, p.folder, "orders", filepath.FromSlash(partition))
	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return nil, "", err
	}
	filePath := filepath.Join(fullPath, name)
	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, filePath, nil
}

func (p *ParquetExporter) progressBar(n int) *progressbar.ProgressBar {
	if p.progress == nil {
		return progressbar.DefaultSilent(int64(n))
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(p.progress),
		progressbar.OptionSetDescription("exporting orders"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.progress) }),
	)
}
