// Package docker runs throwaway ClickHouse servers for integration tests.
//
// A Container wraps the testcontainers ClickHouse module: Start pulls and
// boots the image, waits for the HTTP interface to answer, and DSN returns a
// clickhouse:// connection string that database.Open understands.
//
// # Usage Example
//
//	container := docker.NewWithOptions(docker.DockerOptions{
//		Version:  "25.7",
//		Database: "shop",
//	})
//
//	ctx := context.Background()
//	defer container.Stop(ctx)
//
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	dsn, _ := container.GetDSN()
//	db, _ := database.Open(ctx, database.Options{Driver: "clickhouse", DSN: dsn})
//	defer db.Close()
package docker
