package seewee

const Version = "0.1.0"
