// SPDX-License-Identifier: MIT
// File: loader.go
// Role: Load decodes the addresses and parcels parquet files into the
// dense, position-indexed slices the matcher consumes (spec §4.1).
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/insee-ban/parcelmatch/core"
	"github.com/insee-ban/parcelmatch/geom"
)

const readBatch = 1024

// Load reads addrPath and parcelPath, decodes geometry, validates every
// row per core.Address.Validate/core.Parcel.Validate, and applies the
// debug-path filters in cfg (FilterCodeINSEE, LimitAddresses). It
// returns on the first malformed row: per spec §4.1, loading is
// fatal-on-error and there is no partial load.
func Load(addrPath, parcelPath string, cfg core.Config, logger *zap.Logger) ([]core.Address, []core.Parcel, error) {
	addresses, err := loadAddresses(addrPath, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: addresses: %w", err)
	}
	parcels, err := loadParcels(parcelPath, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: parcels: %w", err)
	}
	if logger != nil {
		logger.Info("loaded department",
			zap.Int("addresses", len(addresses)),
			zap.Int("parcels", len(parcels)),
			zap.String("filter_code_insee", cfg.FilterCodeINSEE),
		)
	}
	return addresses, parcels, nil
}

func loadAddresses(path string, cfg core.Config, logger *zap.Logger) ([]core.Address, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrReadFailed, path, err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[addressRow](f)
	defer reader.Close()

	if err := validateColumns(reader.Schema(), requiredAddressColumns); err != nil {
		return nil, err
	}

	out := make([]core.Address, 0, 1024)
	buf := make([]addressRow, readBatch)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			row := buf[i]
			if cfg.FilterCodeINSEE != "" && row.CodeINSEE != cfg.FilterCodeINSEE {
				continue
			}
			addr, err := addressFromRow(row)
			if err != nil {
				return nil, err
			}
			out = append(out, addr)
			if cfg.LimitAddresses > 0 && len(out) >= cfg.LimitAddresses {
				return out, nil
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrReadFailed, readErr)
		}
	}
	if logger != nil {
		logger.Debug("addresses decoded", zap.Int("count", len(out)))
	}
	return out, nil
}

func addressFromRow(row addressRow) (core.Address, error) {
	point, err := decodePoint(row.Geom)
	if err != nil {
		return core.Address{}, fmt.Errorf("address %s: %w", row.ID, err)
	}
	addr := core.Address{
		ID:           row.ID,
		CodeINSEE:    row.CodeINSEE,
		Point:        point,
		ExistingLink: splitExistingLink(row.ExistingLink),
	}
	if err := addr.Validate(); err != nil {
		return core.Address{}, err
	}
	return addr, nil
}

func splitExistingLink(raw *string) []string {
	if raw == nil || *raw == "" {
		return nil
	}
	parts := strings.Split(*raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadParcels(path string, cfg core.Config, logger *zap.Logger) ([]core.Parcel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrReadFailed, path, err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[parcelRow](f)
	defer reader.Close()

	if err := validateColumns(reader.Schema(), requiredParcelColumns); err != nil {
		return nil, err
	}

	out := make([]core.Parcel, 0, 1024)
	buf := make([]parcelRow, readBatch)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			row := buf[i]
			if cfg.FilterCodeINSEE != "" && row.CodeINSEE != cfg.FilterCodeINSEE {
				continue
			}
			parcel, err := parcelFromRow(row)
			if err != nil {
				return nil, err
			}
			out = append(out, parcel)
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrReadFailed, readErr)
		}
	}
	if logger != nil {
		logger.Debug("parcels decoded", zap.Int("count", len(out)))
	}
	return out, nil
}

func parcelFromRow(row parcelRow) (core.Parcel, error) {
	g, err := decodeGeometry(row.Geom)
	if err != nil {
		return core.Parcel{}, fmt.Errorf("parcel %s: %w", row.ID, err)
	}
	parcel := core.Parcel{
		ID:        row.ID,
		CodeINSEE: row.CodeINSEE,
		Geometry:  g,
	}
	if err := parcel.Validate(); err != nil {
		return core.Parcel{}, err
	}
	parcel.AABB = geom.AABBOf(parcel.Geometry)
	return parcel, nil
}
