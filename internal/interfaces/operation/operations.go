// Package operation
package operation

type DatabaseOperations struct {
	trafficOperation TrafficOperationInterface
}

func NewDatabaseOperations(trafficOperation TrafficOperationInterface) *DatabaseOperations {
	return &DatabaseOperations{
		trafficOperation: trafficOperation,
	}
}

func (db *DatabaseOperations) TrafficOperation() TrafficOperationInterface {
	return db.trafficOperation
}
