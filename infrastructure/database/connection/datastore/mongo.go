package datastore

import (
	"context"
	"os"
	"time"

	"facemark.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Provider string

const (
	ProviderMongo  Provider = "mongo"
	ProviderMemory Provider = "memory"
)

var (
	UserModel       *mongo.Collection
	StudentModel    *mongo.Collection
	TeacherModel    *mongo.Collection
	AttendanceModel *mongo.Collection
	SubjectModel    *mongo.Collection
	DeviceModel     *mongo.Collection
	DeviceLogModel  *mongo.Collection
	NoticeModel     *mongo.Collection
)

var activeProvider = ProviderMongo
var cancelConn *context.CancelFunc

// ActiveProvider reports which storage engine was selected at start up.
func ActiveProvider() Provider {
	return activeProvider
}

func ConnectToDatabase() {
	if os.Getenv("DB_PROVIDER") == string(ProviderMemory) {
		activeProvider = ProviderMemory
		logger.Warning("in-memory datastore selected. data will not survive restarts unless MEMORY_DB_PATH is set")
		return
	}
	cancelConn = connectMongo()
}

func connectMongo() *context.CancelFunc {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		panic("DB_URL is required when DB_PROVIDER is mongo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return &cancel
	}

	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return &cancel
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	UserModel = db.Collection("Users")
	UserModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "personID", Value: 1}},
		Options: options.Index(),
	}})

	StudentModel = db.Collection("Students")
	StudentModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "studentID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	TeacherModel = db.Collection("Teachers")
	TeacherModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "teacherID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	// the unique index is the authoritative at-most-one-per-day guard. the
	// in-controller duplicate check only exists for a friendlier rejection.
	AttendanceModel = db.Collection("Attendance")
	AttendanceModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "studentID", Value: 1}, {Key: "subject", Value: 1}, {Key: "day", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "day", Value: -1}},
		Options: options.Index(),
	}})

	SubjectModel = db.Collection("Subjects")
	SubjectModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "teacherID", Value: 1}},
		Options: options.Index(),
	}})

	DeviceModel = db.Collection("Devices")
	DeviceModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "deviceID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	DeviceLogModel = db.Collection("DeviceLogs")
	DeviceLogModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "deviceID", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index(),
	}})

	NoticeModel = db.Collection("Notices")

	logger.Info("mongodb indexes set up successfully")
}

func CleanUp() {
	if cancelConn != nil {
		(*cancelConn)()
	}
}
