package main

import "beesociety/web"

func main() {
	web.RunApp()
}
