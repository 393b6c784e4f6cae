package main

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/leasetx/internal/api"
	"github.com/Veraticus/leasetx/internal/cache"
	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/config"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/storage"
)

// currentConfig returns the configuration loaded by the root's pre-run hook.
func currentConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	return nil, fmt.Errorf("%w: configuration not loaded", common.ErrMissingConfig)
}

// initStorage opens the preset and history database.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = config.ExpandPath(config.DefaultDatabasePath())
	}

	store, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return store, nil
}

// newClient builds the backend client with its location cache. The returned
// func releases the cache.
func newClient(ctx context.Context, cfg *config.Config) (*api.Client, func()) {
	opts := cache.Options{TTL: cfg.Cache.TTL, MaxSize: cfg.Cache.MaxSize}

	var remote *cache.RedisRemote
	if cfg.Cache.RedisAddr != "" {
		remote = cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err := remote.Ping(ctx); err != nil {
			slog.Warn("Redis unavailable, using in-process cache only", "addr", cfg.Cache.RedisAddr, "error", err)
			_ = remote.Close()
			remote = nil
		} else {
			opts.Remote = remote
		}
	}

	c := cache.New(opts)
	client := api.New(api.Options{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		RetryMax:      cfg.API.RetryMax,
		RatePerSecond: cfg.API.RatePerSecond,
		Cache:         c,
	})

	return client, func() {
		c.Close()
		if remote != nil {
			_ = remote.Close()
		}
	}
}

// filterFlags holds the search criteria flags shared by search and browse.
type filterFlags struct {
	sido         string
	contractEnd  string
	sigungu      []string
	umd          []string
	types        []string
	depositMin   int64
	depositMax   int64
	rentMin      int64
	rentMax      int64
	areaMin      float64
	areaMax      float64
	buildYearMin int
	buildYearMax int
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&ff.sido, "sido", "", "province (시도), e.g. 서울특별시")
	fs.StringSliceVar(&ff.sigungu, "sigungu", nil, "districts (시군구), comma separated")
	fs.StringSliceVar(&ff.umd, "umd", nil, "neighborhoods (읍면동), comma separated; empty means all")
	fs.StringVar(&ff.contractEnd, "contract-end", "", "contract expiry month, YYYYMM")
	fs.StringSliceVar(&ff.types, "type", nil, "property types: apt, villa, house, officetel (default all)")
	fs.Int64Var(&ff.depositMin, "deposit-min", 0, "minimum deposit in 만원")
	fs.Int64Var(&ff.depositMax, "deposit-max", 0, "maximum deposit in 만원")
	fs.Int64Var(&ff.rentMin, "rent-min", 0, "minimum monthly rent in 만원")
	fs.Int64Var(&ff.rentMax, "rent-max", 0, "maximum monthly rent in 만원")
	fs.Float64Var(&ff.areaMin, "area-min", 0, "minimum exclusive area in ㎡")
	fs.Float64Var(&ff.areaMax, "area-max", 0, "maximum exclusive area in ㎡")
	fs.IntVar(&ff.buildYearMin, "build-year-min", 0, "earliest build year")
	fs.IntVar(&ff.buildYearMax, "build-year-max", 0, "latest build year")
}

// apply overlays the flags the user set on base. Unset flags leave base
// untouched so that presets can be refined from the command line.
func (ff *filterFlags) apply(cmd *cobra.Command, base model.FilterSet) (model.FilterSet, error) {
	f := base.Clone()
	changed := cmd.Flags().Changed

	if changed("sido") {
		f.Sido = strings.TrimSpace(ff.sido)
	}
	if changed("sigungu") {
		f.Sigungu = trimAll(ff.sigungu)
	}
	if changed("umd") {
		f.Umd = trimAll(ff.umd)
	}
	if changed("contract-end") {
		ym, err := normalizeYearMonth(ff.contractEnd)
		if err != nil {
			return model.FilterSet{}, err
		}
		f.ContractEnd = ym
	}
	if changed("type") {
		if err := setTypes(&f, ff.types); err != nil {
			return model.FilterSet{}, err
		}
	}

	bounds := []struct {
		name   string
		value  int64
		target **int64
	}{
		{"deposit-min", ff.depositMin, &f.DepositMin},
		{"deposit-max", ff.depositMax, &f.DepositMax},
		{"rent-min", ff.rentMin, &f.RentMin},
		{"rent-max", ff.rentMax, &f.RentMax},
	}
	for _, b := range bounds {
		if !changed(b.name) {
			continue
		}
		if b.value < 0 {
			return model.FilterSet{}, common.NewUserError("--"+b.name+" 값은 0 이상이어야 합니다", common.ErrValidation)
		}
		v := b.value
		*b.target = &v
	}

	if changed("area-min") {
		v := ff.areaMin
		f.AreaMin = &v
	}
	if changed("area-max") {
		v := ff.areaMax
		f.AreaMax = &v
	}
	if changed("build-year-min") {
		v := ff.buildYearMin
		f.BuildYearMin = &v
	}
	if changed("build-year-max") {
		v := ff.buildYearMax
		f.BuildYearMax = &v
	}

	return f, nil
}

var yearMonthPattern = regexp.MustCompile(`^(\d{4})[-./]?(\d{2})$`)

// normalizeYearMonth accepts 202512, 2025-12 or 2025.12 and returns YYYYMM.
func normalizeYearMonth(s string) (string, error) {
	m := yearMonthPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || m[2] < "01" || m[2] > "12" {
		return "", common.NewUserError("계약만기시기는 YYYYMM 형식이어야 합니다", common.ErrValidation)
	}
	return m[1] + m[2], nil
}

var typeAliases = map[string]model.PropertyType{
	"apt":       model.PropertyApartment,
	"apartment": model.PropertyApartment,
	"villa":     model.PropertyVilla,
	"house":     model.PropertyHouse,
	"dagagu":    model.PropertyHouse,
	"officetel": model.PropertyOfficetel,
}

func parsePropertyType(s string) (model.PropertyType, error) {
	s = strings.TrimSpace(s)
	if p, ok := typeAliases[strings.ToLower(s)]; ok {
		return p, nil
	}
	if p := model.PropertyType(s); p.IsValid() {
		return p, nil
	}
	return "", common.NewUserError(fmt.Sprintf("알 수 없는 유형입니다: %s", s), common.ErrValidation)
}

func setTypes(f *model.FilterSet, types []string) error {
	f.IncludeApartment, f.IncludeVilla, f.IncludeHouse, f.IncludeOfficetel = false, false, false, false
	if len(trimAll(types)) == 0 {
		f.IncludeApartment, f.IncludeVilla, f.IncludeHouse, f.IncludeOfficetel = true, true, true, true
		return nil
	}
	for _, t := range types {
		p, err := parsePropertyType(t)
		if err != nil {
			return err
		}
		switch p {
		case model.PropertyApartment:
			f.IncludeApartment = true
		case model.PropertyVilla:
			f.IncludeVilla = true
		case model.PropertyHouse:
			f.IncludeHouse = true
		case model.PropertyOfficetel:
			f.IncludeOfficetel = true
		}
	}
	return nil
}

func trimAll(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// lotFlags address a single lot (필지) for building, owner and unit lookups.
type lotFlags struct {
	sggCode string
	umd     string
	jibun   string
}

func (lf *lotFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&lf.sggCode, "sgg-code", "", "5-digit district code (시군구코드)")
	fs.StringVar(&lf.umd, "umd", "", "neighborhood (읍면동)")
	fs.StringVar(&lf.jibun, "jibun", "", "lot number (지번), e.g. 123-4")
}
