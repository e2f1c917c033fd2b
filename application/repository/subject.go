package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var subjectOnce = sync.Once{}

var subjectRepository database.Repository[entities.Subject]

func SubjectRepo() database.Repository[entities.Subject] {
	subjectOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			subjectRepository = &mongorepo.MongoRepository[entities.Subject]{Model: datastore.SubjectModel}
		} else {
			subjectRepository = inmemory.New[entities.Subject]("Subjects", [][]string{{"name", "teacherID"}})
		}
	})
	return subjectRepository
}
