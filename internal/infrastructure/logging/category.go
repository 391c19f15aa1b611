package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General    Category = "General"
	Connection Category = "Connection"
	Protocol   Category = "Protocol"
	API        Category = "API"
	UI         Category = "UI"
)

const (
	// General
	Startup  SubCategory = "Startup"
	Shutdown SubCategory = "Shutdown"

	// Connection
	Dial      SubCategory = "Dial"
	Closure   SubCategory = "Closure"
	ReadLoop  SubCategory = "ReadLoop"
	WriteLoop SubCategory = "WriteLoop"

	// Protocol
	Decode SubCategory = "Decode"
	Encode SubCategory = "Encode"

	// API
	ExternalService SubCategory = "ExternalService"
)

const (
	AppName      ExtraKey = "AppName"
	RoomID       ExtraKey = "RoomID"
	Kind         ExtraKey = "Kind"
	Sender       ExtraKey = "Sender"
	Status       ExtraKey = "Status"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	RawFrame     ExtraKey = "RawFrame"
	ErrorMessage ExtraKey = "ErrorMessage"
)
