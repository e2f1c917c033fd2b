package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var userOnce = sync.Once{}

var userRepository database.Repository[entities.User]

func UserRepo() database.Repository[entities.User] {
	userOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			userRepository = &mongorepo.MongoRepository[entities.User]{Model: datastore.UserModel}
		} else {
			userRepository = inmemory.New[entities.User]("Users", [][]string{{"email"}})
		}
	})
	return userRepository
}
