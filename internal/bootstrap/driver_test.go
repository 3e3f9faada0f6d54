package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/newsdex/internal/config"
)

func TestOpenDriver_Bleve(t *testing.T) {
	drv, err := OpenDriver(context.Background(), config.EngineConfig{
		Driver: config.DriverBleve,
		Path:   filepath.Join(t.TempDir(), "news.bleve"),
	})
	if err != nil {
		t.Fatalf("OpenDriver: %v", err)
	}
	defer drv.Close()

	if drv.Name() != "bleve" {
		t.Errorf("Name() = %q", drv.Name())
	}
	if err := drv.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpenDriver_Elasticsearch(t *testing.T) {
	drv, err := OpenDriver(context.Background(), config.EngineConfig{
		Driver: config.DriverElasticsearch,
		Addrs:  []string{"http://127.0.0.1:9200"},
	})
	if err != nil {
		t.Fatalf("OpenDriver: %v", err)
	}
	defer drv.Close()

	if drv.Name() != "elasticsearch" {
		t.Errorf("Name() = %q", drv.Name())
	}
}

func TestOpenDriver_Unknown(t *testing.T) {
	if _, err := OpenDriver(context.Background(), config.EngineConfig{Driver: "solr"}); err == nil {
		t.Fatal("expected error")
	}
}
