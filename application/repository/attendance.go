package repository

import (
	"sync"

	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	"facemark.io/infrastructure/database/repository/inmemory"
	mongorepo "facemark.io/infrastructure/database/repository/mongo"
)

var attendanceOnce = sync.Once{}

var attendanceRepository database.Repository[entities.AttendanceRecord]

func AttendanceRepo() database.Repository[entities.AttendanceRecord] {
	attendanceOnce.Do(func() {
		if datastore.ActiveProvider() == datastore.ProviderMongo {
			attendanceRepository = &mongorepo.MongoRepository[entities.AttendanceRecord]{Model: datastore.AttendanceModel}
		} else {
			attendanceRepository = inmemory.New[entities.AttendanceRecord]("Attendance", [][]string{{"studentID", "subject", "day"}})
		}
	})
	return attendanceRepository
}
