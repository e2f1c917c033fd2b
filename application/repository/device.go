package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var deviceOnce = sync.Once{}

var deviceRepository database.Repository[entities.Device]

func DeviceRepo() database.Repository[entities.Device] {
	deviceOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			deviceRepository = &mongorepo.MongoRepository[entities.Device]{Model: datastore.DeviceModel}
		} else {
			deviceRepository = inmemory.New[entities.Device]("Devices", [][]string{{"deviceID"}})
		}
	})
	return deviceRepository
}
