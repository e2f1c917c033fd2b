package maxmind

import (
	"net"
	"os"
	"path/filepath"

	"facemark.io/infrastructure/ipresolver/types"
	"facemark.io/infrastructure/logger"
	"github.com/oschwald/maxminddb-golang"
)

var db *maxminddb.Reader

type MaxMindIPResolver struct{}

func (mmResolver *MaxMindIPResolver) ConnectToDB() {
	var err error
	dbPath := os.Getenv("MAXMIND_DB_PATH")
	if dbPath == "" {
		dbPath, _ = filepath.Abs("infrastructure/ipresolver/maxmind/GeoLite2-City.mmdb")
	}
	db, err = maxminddb.Open(dbPath)
	if err != nil {
		logger.Error("could not connect to mmdb", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}
	logger.Info("connected to maxmind db successfully")
}

type maxmindLookupResult struct {
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Location struct {
		Longitude      float64 `maxminddb:"longitude"`
		Latitude       float64 `maxminddb:"latitude"`
		AccuracyRadius int     `maxminddb:"accuracy_radius"`
	} `maxminddb:"location"`
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

func (mmResolver *MaxMindIPResolver) LookUp(ipAddress string) (*types.IPResult, error) {
	ip := net.ParseIP(ipAddress)
	var result maxmindLookupResult
	err := db.Lookup(ip, &result)
	if err != nil {
		return nil, err
	}
	return &types.IPResult{
		Longitude:     result.Location.Longitude,
		Latitude:      result.Location.Latitude,
		City:          result.City.Names["en"],
		CountryCode:   result.Country.ISOCode,
		AcuracyRadius: result.Location.AccuracyRadius,
		IPAddress:     ipAddress,
	}, nil
}
