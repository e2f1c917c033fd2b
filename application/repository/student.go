package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var studentOnce = sync.Once{}

var studentRepository database.Repository[entities.Student]

func StudentRepo() database.Repository[entities.Student] {
	studentOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			studentRepository = &mongorepo.MongoRepository[entities.Student]{Model: datastore.StudentModel}
		} else {
			studentRepository = inmemory.New[entities.Student]("Students", [][]string{{"studentID"}, {"email"}})
		}
	})
	return studentRepository
}
