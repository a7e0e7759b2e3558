package usecases

import (
	"github.com/lintang-b-s/Windnav/pkg/engine"
	"github.com/lintang-b-s/Windnav/pkg/snapshot"
	"go.uber.org/zap"
)

type WindService struct {
	log    *zap.Logger
	engine WindEngine
}

func NewWindService(log *zap.Logger, engine WindEngine) *WindService {
	return &WindService{log: log, engine: engine}
}

func (ws *WindService) WindField() (engine.WindField, error) {
	return ws.engine.WindField()
}

func (ws *WindService) WindFieldOf(pair *snapshot.Pair) (engine.WindField, error) {
	return ws.engine.WindFieldOf(pair)
}

func (ws *WindService) SnapshotInfo() (engine.SnapshotInfo, error) {
	return ws.engine.SnapshotInfo()
}
