package common

type LocalMsgType uint32

func (lt *LocalMsgType) Type() LocalMsgType {
	return (*lt) & (0xff00)
}

func (lt *LocalMsgType) SubType() LocalMsgType {
	return (*lt) & (0x00ff)
}

// |--type--|-subtype-|
// 0000 0000 0000 0000
const (
	LocalNoUseType     LocalMsgType = 0
	TrainMsg           LocalMsgType = 1 << 8
	TrainMsg_Update    LocalMsgType = TrainMsg | 1
	TrainMsg_Converged LocalMsgType = TrainMsg | 2
	TrainMsg_Failed    LocalMsgType = TrainMsg | 3
)

var LocalMsgType_Name = map[LocalMsgType]string{
	LocalNoUseType:     "NoUse",
	TrainMsg_Update:    "Update",
	TrainMsg_Converged: "Converged",
	TrainMsg_Failed:    "Failed",
}

func (lt LocalMsgType) String() string {
	if name, ok := LocalMsgType_Name[lt]; ok {
		return name
	}
	return "Unknown"
}
