package main

import (
	"fmt"
	"log"
	"os"
	"stockbacktest/cmd"

	_ "github.com/lib/pq"
)

func main() {
	fmt.Println(os.Getenv("commit_hash"))
	apiHandler, err := cmd.InitializeDependencies(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)
	err = apiHandler.StartApi(apiHandler.Config.ApiPort)
	if err != nil {
		log.Fatal(err)
	}
}
