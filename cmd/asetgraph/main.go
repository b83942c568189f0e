// Command asetgraph serves the asset inventory GraphQL API and manages its data.
package main

func main() {
	Execute()
}
