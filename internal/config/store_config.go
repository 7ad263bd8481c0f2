package config

import (
	"fmt"
	"net/url"
)

type StoreConfig interface {
	GetMongoURI() string
	GetMongoDatabase() string
}

type Store struct {
	MongoURI      string `yaml:"mongo_uri" env:"MONGO_URI"`
	MongoUsername string `yaml:"mongo_username" env:"MONGO_USERNAME"`
	MongoPassword string `yaml:"mongo_password" env:"MONGO_PASSWORD"`
	MongoHost     string `yaml:"mongo_host" env:"MONGO_HOST"`
	MongoPort     string `yaml:"mongo_port" env:"MONGO_PORT"`
	MongoDatabase string `yaml:"mongo_database" env:"MONGO_DATABASE"`
}

var _ StoreConfig = Store{}

func (s *Store) applyDefaults() {
	if s.MongoHost == "" {
		s.MongoHost = "localhost"
	}
	if s.MongoPort == "" {
		s.MongoPort = "27017"
	}
	if s.MongoDatabase == "" {
		s.MongoDatabase = "diplomats"
	}
}

// GetMongoURI returns MONGO_URI when set, otherwise it is assembled from the individual credentials.
func (s Store) GetMongoURI() string {
	if s.MongoURI != "" {
		return s.MongoURI
	}
	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%s", s.MongoHost, s.MongoPort),
		Path:   "/",
	}
	if s.MongoUsername != "" {
		u.User = url.UserPassword(s.MongoUsername, s.MongoPassword)
	}
	return u.String()
}

func (s Store) GetMongoDatabase() string {
	return s.MongoDatabase
}
