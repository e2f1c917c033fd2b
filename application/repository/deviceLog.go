package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var deviceLogOnce = sync.Once{}

var deviceLogRepository database.Repository[entities.DeviceLog]

func DeviceLogRepo() database.Repository[entities.DeviceLog] {
	deviceLogOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			deviceLogRepository = &mongorepo.MongoRepository[entities.DeviceLog]{Model: datastore.DeviceLogModel}
		} else {
			deviceLogRepository = inmemory.New[entities.DeviceLog]("DeviceLogs", nil)
		}
	})
	return deviceLogRepository
}
