// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the loaded dataset and, when MongoDB is the source, the
// client it was read from. The client stays open for health checks.
type DBDeps struct {
	Dataset *employees.Dataset

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
