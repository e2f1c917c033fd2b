package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var teacherOnce = sync.Once{}

var teacherRepository database.Repository[entities.Teacher]

func TeacherRepo() database.Repository[entities.Teacher] {
	teacherOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			teacherRepository = &mongorepo.MongoRepository[entities.Teacher]{Model: datastore.TeacherModel}
		} else {
			teacherRepository = inmemory.New[entities.Teacher]("Teachers", [][]string{{"teacherID"}, {"email"}})
		}
	})
	return teacherRepository
}
