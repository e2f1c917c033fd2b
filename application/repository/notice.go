package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var noticeOnce = sync.Once{}

var noticeRepository database.Repository[entities.Notice]

func NoticeRepo() database.Repository[entities.Notice] {
	noticeOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			noticeRepository = &mongorepo.MongoRepository[entities.Notice]{Model: datastore.NoticeModel}
		} else {
			noticeRepository = inmemory.New[entities.Notice]("Notices", nil)
		}
	})
	return noticeRepository
}
